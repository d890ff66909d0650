package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a laundry customer. TotalPoints, TotalOrders and
// TotalSpent are denormalized aggregates maintained incrementally by the
// order lifecycle; see services.RecomputeCustomerAggregates for the
// reconciliation path.
type Customer struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Phone       string          `gorm:"uniqueIndex;not null" json:"phone"`
	Address     *string         `json:"address,omitempty"`
	TotalPoints int             `gorm:"not null;default:0" json:"total_points"`
	TotalOrders int             `gorm:"not null;default:0" json:"total_orders"`
	TotalSpent  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_spent"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
