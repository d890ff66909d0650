package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is a payroll record, independent of the order/inventory core
type Employee struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Phone         string          `gorm:"not null" json:"phone"`
	Position      string          `gorm:"not null" json:"position"`
	MonthlySalary decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"monthly_salary"`
	HiredAt       time.Time       `json:"hired_at"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}
