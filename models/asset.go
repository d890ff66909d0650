package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Asset is a piece of equipment (washer, dryer, iron press). Depreciation
// is straight-line and computed on read, never stored.
type Asset struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"not null" json:"name"`
	PurchasePrice    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"purchase_price"`
	UsefulLifeMonths int             `gorm:"not null" json:"useful_life_months"`
	PurchasedAt      time.Time       `json:"purchased_at"`
	IsActive         bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}

// CurrentValue returns the straight-line depreciated value of the asset
// as of now: purchase price minus one monthly share per elapsed month,
// floored at zero.
func (a *Asset) CurrentValue(now time.Time) decimal.Decimal {
	if a.UsefulLifeMonths <= 0 {
		return a.PurchasePrice
	}
	elapsed := monthsBetween(a.PurchasedAt, now)
	if elapsed <= 0 {
		return a.PurchasePrice
	}
	if elapsed >= a.UsefulLifeMonths {
		return decimal.Zero
	}
	monthly := a.PurchasePrice.Div(decimal.NewFromInt(int64(a.UsefulLifeMonths)))
	return a.PurchasePrice.Sub(monthly.Mul(decimal.NewFromInt(int64(elapsed)))).Round(2)
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}
