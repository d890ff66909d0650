package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Material is a consumable inventory item (detergent, softener, plastic
// wrap, ...). StockQty is only ever changed through the inventory service,
// which appends a MaterialStockMovement in the same transaction.
type Material struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Unit          string          `gorm:"not null" json:"unit"` // gram, ml, pcs, ...
	StockQty      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"stock_qty"`
	MinStockAlert decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"min_stock_alert"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Material model
func (Material) TableName() string {
	return "materials"
}

// IsLowStock reports whether the current stock is at or below the alert threshold
func (m *Material) IsLowStock() bool {
	return m.StockQty.LessThanOrEqual(m.MinStockAlert)
}
