package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/middleware"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/services"
)

// OrderItemRequest is one finalized order line in a confirm/walk-in request
type OrderItemRequest struct {
	ServiceID uint            `json:"service_id" binding:"required"`
	Qty       decimal.Decimal `json:"qty"`
	IsExpress bool            `json:"is_express"`
}

// ConfirmBookingRequest represents the request body for confirming a booking
type ConfirmBookingRequest struct {
	Items          []OrderItemRequest `json:"items" binding:"required"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	PointsToUse    int                `json:"points_to_use"`
	PaymentStatus  string             `json:"payment_status" binding:"required"`
	PaymentMethod  *string            `json:"payment_method"`
}

// CreateWalkInRequest represents the request body for a walk-in order
type CreateWalkInRequest struct {
	CustomerName    string             `json:"customer_name" binding:"required"`
	CustomerPhone   string             `json:"customer_phone" binding:"required"`
	CustomerAddress *string            `json:"customer_address"`
	Items           []OrderItemRequest `json:"items" binding:"required"`
	DiscountAmount  decimal.Decimal    `json:"discount_amount"`
	PointsToUse     int                `json:"points_to_use"`
	PaymentStatus   string             `json:"payment_status" binding:"required"`
	PaymentMethod   *string            `json:"payment_method"`
	Notes           *string            `json:"notes"`
}

// UpdateStatusRequest represents the request body for a status transition
type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Note   *string `json:"note"`
}

// UpdatePaymentRequest represents the request body for a payment update
type UpdatePaymentRequest struct {
	PaymentStatus string  `json:"payment_status" binding:"required"`
	PaymentMethod *string `json:"payment_method"`
}

// AddNoteRequest represents the request body for adding an order note
type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// ListOrders handles GET /api/v1/orders - lists orders, newest first,
// optionally filtered by ?status=
func ListOrders(c *gin.Context) {
	orderService := services.NewOrderService(config.GetDB())

	var statusFilter *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.IsValid() {
			respondError(c, &services.ValidationError{Field: "status", Message: "unknown status filter"})
			return
		}
		statusFilter = &status
	}

	orders, err := orderService.ListOrders(statusFilter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id
func GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.GetOrder(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

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

// ConfirmBooking handles POST /api/v1/orders/:id/confirm - replaces the
// booking estimate with finalized items, deducts stock and moves the
// order to PENDING
func ConfirmBooking(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.ConfirmBooking(orderID, services.ConfirmInput{
		Items:          toItemInputs(req.Items),
		DiscountAmount: req.DiscountAmount,
		PointsToUse:    req.PointsToUse,
		PaymentStatus:  req.PaymentStatus,
		PaymentMethod:  req.PaymentMethod,
	}, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CreateWalkInOrder handles POST /api/v1/orders/walk-in - creates an
// order directly in PENDING with final quantities and deducted stock
func CreateWalkInOrder(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateWalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.CreateWalkInOrder(services.WalkInInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Items:           toItemInputs(req.Items),
		DiscountAmount:  req.DiscountAmount,
		PointsToUse:     req.PointsToUse,
		PaymentStatus:   req.PaymentStatus,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.UpdateStatus(orderID, models.OrderStatus(req.Status), req.Note, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderPayment handles PATCH /api/v1/orders/:id/payment
func UpdateOrderPayment(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.UpdatePayment(orderID, req.PaymentStatus, req.PaymentMethod, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AddOrderNote handles POST /api/v1/orders/:id/notes
func AddOrderNote(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	if err := orderService.AddNote(orderID, req.Note, actorID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Note added",
	})
}

// MarkHistoryNotified handles POST /api/v1/orders/history/:id/notified -
// flips the notification-sent flag on one history entry
func MarkHistoryNotified(c *gin.Context) {
	historyID, ok := parseIDParam(c)
	if !ok {
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	if err := orderService.MarkHistoryNotified(historyID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "History entry marked as notified",
	})
}

func toItemInputs(items []OrderItemRequest) []services.ItemInput {
	inputs := make([]services.ItemInput, len(items))
	for i, item := range items {
		inputs[i] = services.ItemInput{
			ServiceID: item.ServiceID,
			Qty:       item.Qty,
			IsExpress: item.IsExpress,
		}
	}
	return inputs
}

// parseIDParam parses the :id path parameter, writing the error response itself
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid id parameter",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// requireActor resolves the acting staff user, writing the error response itself
func requireActor(c *gin.Context) (*uint, bool) {
	actorID, err := middleware.ResolveActorID(c, config.GetDB())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": err.Error(),
			},
		})
		return nil, false
	}
	return actorID, true
}
