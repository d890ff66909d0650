package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order. PriceAtMoment and ExpressMultiplier
// are snapshots taken when the item is created, so later catalog price
// changes never alter historical orders.
type OrderItem struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	OrderID           uint            `gorm:"not null;index" json:"order_id"`
	ServiceID         uint            `gorm:"not null;index" json:"service_id"`
	Service           Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Qty               decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"qty"`
	PriceAtMoment     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_at_moment"`
	IsExpress         bool            `gorm:"not null;default:false" json:"is_express"`
	ExpressMultiplier decimal.Decimal `gorm:"type:decimal(5,2);not null;default:1" json:"express_multiplier"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"subtotal"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
