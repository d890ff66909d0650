package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bersihkilat/laundry-api/models"
)

func TestAccruePoints(t *testing.T) {
	tests := []struct {
		name           string
		finalPrice     string
		expectedPoints int
	}{
		{"below one unit earns nothing", "9999", 0},
		{"exactly one unit", "10000", 1},
		{"floors the fraction", "45000", 4},
		{"just under the next unit", "49999", 4},
		{"large order", "250000", 25},
		{"free order", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			customer := createTestCustomer(t, db, "Budi", "081234567890", 0)
			order := &models.Order{FinalPrice: dec(t, tt.finalPrice)}

			var earned int
			err := db.Transaction(func(tx *gorm.DB) error {
				var err error
				earned, err = AccruePoints(tx, customer.ID, order)
				return err
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPoints, earned)

			var reloaded models.Customer
			require.NoError(t, db.First(&reloaded, customer.ID).Error)
			assert.Equal(t, tt.expectedPoints, reloaded.TotalPoints)
			assert.Equal(t, 1, reloaded.TotalOrders)
			assert.True(t, dec(t, tt.finalPrice).Equal(reloaded.TotalSpent))
		})
	}
}

func TestAccruePointsUnknownCustomer(t *testing.T) {
	db := setupTestDB(t)
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := AccruePoints(tx, 404, &models.Order{FinalPrice: decimal.NewFromInt(10000)})
		return err
	})
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestSpendPoints(t *testing.T) {
	tests := []struct {
		name          string
		balance       int
		requested     int
		expectedSpent int
		expectedLeft  int
	}{
		{"full redemption", 50, 30, 30, 20},
		{"clamped to balance", 10, 30, 10, 0},
		{"zero balance", 0, 30, 0, 0},
		{"zero requested", 50, 0, 0, 50},
		{"negative requested", 50, -5, 0, 50},
		{"exact balance", 25, 25, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			customer := createTestCustomer(t, db, "Sari", "081200000001", tt.balance)

			var spent int
			err := db.Transaction(func(tx *gorm.DB) error {
				var err error
				spent, err = SpendPoints(tx, customer.ID, tt.requested)
				return err
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSpent, spent)

			var reloaded models.Customer
			require.NoError(t, db.First(&reloaded, customer.ID).Error)
			assert.Equal(t, tt.expectedLeft, reloaded.TotalPoints)
		})
	}
}

func TestRecomputeCustomerAggregates(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "Budi", "081234567890", 0)

	// Two TAKEN orders plus a cancelled one that must not count
	taken1 := models.Order{TrackingCode: "TAKEN00001", CustomerID: customer.ID, Status: models.StatusTaken, FinalPrice: dec(t, "45000")}
	taken2 := models.Order{TrackingCode: "TAKEN00002", CustomerID: customer.ID, Status: models.StatusTaken, FinalPrice: dec(t, "30000")}
	cancelled := models.Order{TrackingCode: "CANCEL0001", CustomerID: customer.ID, Status: models.StatusCancelled, FinalPrice: dec(t, "99999")}
	require.NoError(t, db.Create(&taken1).Error)
	require.NoError(t, db.Create(&taken2).Error)
	require.NoError(t, db.Create(&cancelled).Error)

	drift, err := RecomputeCustomerAggregates(db, customer.ID)
	require.NoError(t, err)
	assert.True(t, drift.HasDrift, "stored aggregates were never incremented")
	assert.Equal(t, 0, drift.StoredTotalOrders)
	assert.Equal(t, 2, drift.ActualTotalOrders)
	assert.True(t, dec(t, "75000").Equal(drift.ActualTotalSpent))

	// Align the stored aggregates and the drift disappears
	updates := map[string]any{"total_orders": 2, "total_spent": dec(t, "75000")}
	require.NoError(t, db.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates).Error)

	drift, err = RecomputeCustomerAggregates(db, customer.ID)
	require.NoError(t, err)
	assert.False(t, drift.HasDrift)
}
