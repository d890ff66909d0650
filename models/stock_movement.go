package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement types
const (
	MovementIn         = "IN"         // restock or manual addition
	MovementOut        = "OUT"        // consumed by an order
	MovementAdjustment = "ADJUSTMENT" // manual correction to an absolute quantity
	MovementReturn     = "RETURN"     // reversal of an order's consumption on cancellation
)

// MaterialStockMovement is one append-only ledger row recording a single
// change to a material's quantity. StockBefore/StockAfter are captured at
// write time so stock can be reconstructed at any point in history. Rows
// are never updated or deleted.
type MaterialStockMovement struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	MaterialID  uint            `gorm:"not null;index" json:"material_id"`
	Material    Material        `gorm:"foreignKey:MaterialID" json:"-"`
	Type        string          `gorm:"not null" json:"type"` // IN, OUT, ADJUSTMENT, RETURN
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	StockBefore decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"stock_before"`
	StockAfter  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"stock_after"`
	Notes       *string         `json:"notes,omitempty"`
	OrderID     *uint           `gorm:"index" json:"order_id,omitempty"` // set for order-driven OUT/RETURN rows
	CreatedByID *uint           `gorm:"index" json:"created_by_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name for the MaterialStockMovement model
func (MaterialStockMovement) TableName() string {
	return "material_stock_movements"
}

// IsInbound reports whether this movement type increases stock
func (m *MaterialStockMovement) IsInbound() bool {
	return m.Type == MovementIn || m.Type == MovementReturn
}
