package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bersihkilat/laundry-api/models"
)

// Loyalty point economics: one point is earned per PointEarnUnit of final
// price; one redeemed point is worth PointRedeemValue off the bill.
var (
	PointEarnUnit    = decimal.NewFromInt(10000)
	PointRedeemValue = decimal.NewFromInt(1000)
)

// AccruePoints credits the customer for a picked-up order:
// floor(final_price / PointEarnUnit) points, plus the denormalized
// TotalOrders/TotalSpent aggregates. Must be invoked exactly once per
// order reaching TAKEN; the lifecycle engine guards against double
// accrual by re-reading the previous status under lock.
func AccruePoints(tx *gorm.DB, customerID uint, order *models.Order) (int, error) {
	var customer models.Customer
	if err := tx.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &NotFoundError{Resource: "customer", ID: customerID}
		}
		return 0, classifyDBError(err)
	}

	earned := int(order.FinalPrice.Div(PointEarnUnit).Floor().IntPart())

	updates := map[string]any{
		"total_orders": gorm.Expr("total_orders + ?", 1),
		"total_spent":  customer.TotalSpent.Add(order.FinalPrice),
	}
	if earned > 0 {
		updates["total_points"] = gorm.Expr("total_points + ?", earned)
	}
	if err := tx.Model(&customer).Updates(updates).Error; err != nil {
		return 0, classifyDBError(err)
	}

	return earned, nil
}

// SpendPoints redeems up to requested points from the customer's balance,
// clamped to what is available. Never fails on a short balance: it
// degrades to spending what the customer has. Returns the points actually
// spent.
func SpendPoints(tx *gorm.DB, customerID uint, requested int) (int, error) {
	if requested <= 0 {
		return 0, nil
	}

	var customer models.Customer
	if err := tx.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &NotFoundError{Resource: "customer", ID: customerID}
		}
		return 0, classifyDBError(err)
	}

	spent := requested
	if customer.TotalPoints < spent {
		spent = customer.TotalPoints
	}
	if spent == 0 {
		return 0, nil
	}

	err := tx.Model(&customer).Update("total_points", gorm.Expr("total_points - ?", spent)).Error
	if err != nil {
		return 0, classifyDBError(err)
	}
	return spent, nil
}

// CustomerAggregateDrift is the difference between a customer's stored
// denormalized aggregates and the values recomputed from their orders
type CustomerAggregateDrift struct {
	CustomerID        uint            `json:"customer_id"`
	StoredTotalOrders int             `json:"stored_total_orders"`
	ActualTotalOrders int             `json:"actual_total_orders"`
	StoredTotalSpent  decimal.Decimal `json:"stored_total_spent"`
	ActualTotalSpent  decimal.Decimal `json:"actual_total_spent"`
	HasDrift          bool            `json:"has_drift"`
}

// RecomputeCustomerAggregates recomputes TotalOrders and TotalSpent from
// the customer's TAKEN orders and reports any drift against the stored
// incremental counters. Read-only: flagged drift is surfaced, not
// silently repaired.
func RecomputeCustomerAggregates(db *gorm.DB, customerID uint) (*CustomerAggregateDrift, error) {
	var customer models.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "customer", ID: customerID}
		}
		return nil, classifyDBError(err)
	}

	var orders []models.Order
	err := db.Where("customer_id = ? AND status = ?", customerID, models.StatusTaken).Find(&orders).Error
	if err != nil {
		return nil, classifyDBError(err)
	}

	actualSpent := decimal.Zero
	for _, o := range orders {
		actualSpent = actualSpent.Add(o.FinalPrice)
	}

	drift := &CustomerAggregateDrift{
		CustomerID:        customerID,
		StoredTotalOrders: customer.TotalOrders,
		ActualTotalOrders: len(orders),
		StoredTotalSpent:  customer.TotalSpent,
		ActualTotalSpent:  actualSpent,
	}
	drift.HasDrift = drift.StoredTotalOrders != drift.ActualTotalOrders ||
		!drift.StoredTotalSpent.Equal(drift.ActualTotalSpent)
	return drift, nil
}
