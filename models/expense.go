package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is an operating-cost record, independent of the order/inventory core
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"not null" json:"description"`
	Category    string          `gorm:"not null" json:"category"` // utilities, rent, supplies, ...
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	SpentAt     time.Time       `json:"spent_at"`
	CreatedByID *uint           `gorm:"index" json:"created_by_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
