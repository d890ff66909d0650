package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/services"
)

// CreateBookingRequest represents the public booking request body
type CreateBookingRequest struct {
	CustomerName    string          `json:"customer_name" binding:"required"`
	CustomerPhone   string          `json:"customer_phone" binding:"required"`
	CustomerAddress *string         `json:"customer_address"`
	ServiceID       uint            `json:"service_id" binding:"required"`
	EstimatedQty    decimal.Decimal `json:"estimated_qty"`
	IsExpress       bool            `json:"is_express"`
	Notes           *string         `json:"notes"`
}

// CreateBooking handles POST /api/v1/bookings - public self-service
// booking. No authentication: the order carries no acting user.
func CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.CreateBooking(services.BookingInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		ServiceID:       req.ServiceID,
		EstimatedQty:    req.EstimatedQty,
		IsExpress:       req.IsExpress,
		Notes:           req.Notes,
	}, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// TrackOrder handles GET /api/v1/track/:code - public read-only lookup of
// an order by its tracking code, with items and chronological history
func TrackOrder(c *gin.Context) {
	code := c.Param("code")

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.FindByTrackingCode(code)
	if err != nil {
		respondError(c, err)
		return
	}

	// Attach a presigned photo URL when an intake photo exists
	if order.PhotoS3Key != nil {
		if photoService := services.GetPhotoService(); photoService != nil {
			if url, err := photoService.GetPhotoURL(*order.PhotoS3Key); err == nil && url != "" {
				order.PhotoURL = &url
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
