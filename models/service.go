package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service unit types
const (
	ServiceUnitKg   = "kg"   // weight-based, fractional quantities allowed
	ServiceUnitItem = "item" // piece-based
)

// Service is a catalog entry: one kind of laundry work the shop sells
type Service struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	Name              string            `gorm:"not null" json:"name"`
	Description       *string           `json:"description,omitempty"`
	Price             decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"price"` // per unit
	Unit              string            `gorm:"not null;default:'kg'" json:"unit"`        // "kg" or "item"
	SupportsExpress   bool              `gorm:"not null;default:false" json:"supports_express"`
	ExpressMultiplier decimal.Decimal   `gorm:"type:decimal(5,2);not null;default:1" json:"express_multiplier"`
	IsActive          bool              `gorm:"not null;default:true" json:"is_active"`
	Materials         []ServiceMaterial `gorm:"foreignKey:ServiceID" json:"materials,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ServiceMaterial is one row of a service's bill-of-materials recipe:
// how much of a material one unit of the service consumes
type ServiceMaterial struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ServiceID      uint            `gorm:"not null;uniqueIndex:idx_service_material" json:"service_id"`
	MaterialID     uint            `gorm:"not null;uniqueIndex:idx_service_material" json:"material_id"`
	Material       Material        `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	QuantityNeeded decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity_needed"` // per unit of service
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the ServiceMaterial model
func (ServiceMaterial) TableName() string {
	return "service_materials"
}
