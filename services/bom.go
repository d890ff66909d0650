package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bersihkilat/laundry-api/models"
)

// ServiceQuantity is one (service, quantity) pair to resolve materials for
type ServiceQuantity struct {
	ServiceID uint
	Qty       decimal.Decimal
}

// ResolveMaterials computes the aggregate material requirement of a set of
// service lines from the per-service recipes: for every recipe row,
// quantity_needed × line qty, summed per material. Read-only. A service
// with no recipe rows contributes nothing (ironing-only services consume
// no tracked material). An unknown service id is an input-contract
// violation: callers validate service existence before this stage.
func ResolveMaterials(tx *gorm.DB, items []ServiceQuantity) (map[uint]decimal.Decimal, error) {
	required := make(map[uint]decimal.Decimal)

	for _, item := range items {
		var count int64
		if err := tx.Model(&models.Service{}).Where("id = ?", item.ServiceID).Count(&count).Error; err != nil {
			return nil, classifyDBError(err)
		}
		if count == 0 {
			return nil, &ValidationError{Field: "service_id", Message: "unknown service passed to material resolution"}
		}

		var recipe []models.ServiceMaterial
		if err := tx.Where("service_id = ?", item.ServiceID).Find(&recipe).Error; err != nil {
			return nil, classifyDBError(err)
		}

		for _, row := range recipe {
			needed := row.QuantityNeeded.Mul(item.Qty)
			required[row.MaterialID] = required[row.MaterialID].Add(needed)
		}
	}

	return required, nil
}
