package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bersihkilat/laundry-api/models"
)

// setupTestDB creates an in-memory sqlite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.ServiceMaterial{},
		&models.Material{},
		&models.MaterialStockMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderHistory{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", value, err)
	}
	return d
}

func createTestMaterial(t *testing.T, db *gorm.DB, name string, stock, minAlert string) *models.Material {
	t.Helper()
	material := models.Material{
		Name:          name,
		Unit:          "gram",
		StockQty:      dec(t, stock),
		MinStockAlert: dec(t, minAlert),
		IsActive:      true,
	}
	if err := db.Create(&material).Error; err != nil {
		t.Fatalf("Failed to create material %s: %v", name, err)
	}
	return &material
}

func createTestService(t *testing.T, db *gorm.DB, name, price string, supportsExpress bool) *models.Service {
	t.Helper()
	service := models.Service{
		Name:              name,
		Price:             dec(t, price),
		Unit:              models.ServiceUnitKg,
		SupportsExpress:   supportsExpress,
		ExpressMultiplier: dec(t, "1.5"),
		IsActive:          true,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("Failed to create service %s: %v", name, err)
	}
	return &service
}

func addRecipeRow(t *testing.T, db *gorm.DB, serviceID, materialID uint, perUnit string) {
	t.Helper()
	row := models.ServiceMaterial{
		ServiceID:      serviceID,
		MaterialID:     materialID,
		QuantityNeeded: dec(t, perUnit),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("Failed to create recipe row: %v", err)
	}
}

func createTestCustomer(t *testing.T, db *gorm.DB, name, phone string, points int) *models.Customer {
	t.Helper()
	customer := models.Customer{
		Name:        name,
		Phone:       phone,
		TotalPoints: points,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to create customer %s: %v", name, err)
	}
	return &customer
}

func movementsForOrder(t *testing.T, db *gorm.DB, orderID uint) []models.MaterialStockMovement {
	t.Helper()
	var movements []models.MaterialStockMovement
	if err := db.Where("order_id = ?", orderID).Order("id asc").Find(&movements).Error; err != nil {
		t.Fatalf("Failed to load movements: %v", err)
	}
	return movements
}

func reloadMaterial(t *testing.T, db *gorm.DB, id uint) *models.Material {
	t.Helper()
	var material models.Material
	if err := db.First(&material, id).Error; err != nil {
		t.Fatalf("Failed to reload material %d: %v", id, err)
	}
	return &material
}
