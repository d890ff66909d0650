package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/services"
)

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ListCustomers handles GET /api/v1/customers
func ListCustomers(c *gin.Context) {
	db := config.GetDB()

	var customers []models.Customer
	if err := db.Order("id asc").Find(&customers).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customers,
	})
}

// GetCustomer handles GET /api/v1/customers/:id
func GetCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		respondError(c, &services.NotFoundError{Resource: "customer", ID: customerID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// CreateCustomer handles POST /api/v1/customers
func CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer := models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := config.GetDB().Create(&customer).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    customer,
	})
}

// UpdateCustomer handles PATCH /api/v1/customers/:id. The denormalized
// aggregates (points, orders, spend) are not editable here: they belong
// to the lifecycle engine and the loyalty ledger.
func UpdateCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		respondError(c, &services.NotFoundError{Resource: "customer", ID: customerID})
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if len(updates) > 0 {
		if err := db.Model(&customer).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// ListCustomerOrders handles GET /api/v1/customers/:id/orders
func ListCustomerOrders(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var orders []models.Order
	err := db.Where("customer_id = ?", customerID).
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// CheckCustomerAggregates handles GET /api/v1/customers/:id/aggregates -
// recomputes the denormalized counters from TAKEN orders and reports drift
func CheckCustomerAggregates(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	drift, err := services.RecomputeCustomerAggregates(config.GetDB(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    drift,
	})
}
