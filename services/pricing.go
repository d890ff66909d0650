package services

import (
	"github.com/shopspring/decimal"

	"github.com/bersihkilat/laundry-api/models"
)

// CalculatePrice computes the price of qty units of a service. The base is
// price × qty; the express multiplier applies only when the service
// supports express handling. The same formula is used at estimate time
// (booking) and at confirmation/walk-in time, so the only price change
// between the two comes from the measured quantity replacing the estimate.
func CalculatePrice(service *models.Service, qty decimal.Decimal, isExpress bool) decimal.Decimal {
	base := service.Price.Mul(qty)
	if isExpress && service.SupportsExpress {
		return base.Mul(service.ExpressMultiplier).Round(2)
	}
	return base.Round(2)
}
