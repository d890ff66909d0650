package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/services"
)

// CreateServiceRequest represents the request body for creating a catalog service
type CreateServiceRequest struct {
	Name              string           `json:"name" binding:"required"`
	Description       *string          `json:"description"`
	Price             decimal.Decimal  `json:"price"`
	Unit              string           `json:"unit" binding:"required,oneof=kg item"`
	SupportsExpress   bool             `json:"supports_express"`
	ExpressMultiplier *decimal.Decimal `json:"express_multiplier"`
}

// UpdateServiceRequest represents the request body for updating a catalog service
type UpdateServiceRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	SupportsExpress   *bool            `json:"supports_express"`
	ExpressMultiplier *decimal.Decimal `json:"express_multiplier"`
	IsActive          *bool            `json:"is_active"`
}

// RecipeRowRequest is one material requirement in a service's recipe
type RecipeRowRequest struct {
	MaterialID     uint            `json:"material_id" binding:"required"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
}

// SetRecipeRequest replaces a service's bill-of-materials recipe wholesale
type SetRecipeRequest struct {
	Rows []RecipeRowRequest `json:"rows" binding:"required"`
}

// ListServices handles GET /api/v1/services - the catalog with recipes
func ListServices(c *gin.Context) {
	db := config.GetDB()

	var catalog []models.Service
	if err := db.Preload("Materials.Material").Order("id asc").Find(&catalog).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    catalog,
	})
}

// CreateService handles POST /api/v1/services
func CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !req.Price.IsPositive() {
		respondError(c, &services.ValidationError{Field: "price", Message: "price must be positive"})
		return
	}

	multiplier := decimal.NewFromInt(1)
	if req.ExpressMultiplier != nil {
		if req.ExpressMultiplier.LessThan(decimal.NewFromInt(1)) {
			respondError(c, &services.ValidationError{Field: "express_multiplier", Message: "express multiplier cannot be below 1"})
			return
		}
		multiplier = *req.ExpressMultiplier
	}

	service := models.Service{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Unit:              req.Unit,
		SupportsExpress:   req.SupportsExpress,
		ExpressMultiplier: multiplier,
		IsActive:          true,
	}
	if err := config.GetDB().Create(&service).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// UpdateService handles PATCH /api/v1/services/:id. Price changes never
// touch existing orders: items snapshot the price at order time.
func UpdateService(c *gin.Context) {
	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db := config.GetDB()
	var service models.Service
	if err := db.First(&service, serviceID).Error; err != nil {
		respondError(c, &services.NotFoundError{Resource: "service", ID: serviceID})
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.SupportsExpress != nil {
		updates["supports_express"] = *req.SupportsExpress
	}
	if req.ExpressMultiplier != nil {
		updates["express_multiplier"] = *req.ExpressMultiplier
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := db.Model(&service).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// SetServiceRecipe handles PUT /api/v1/services/:id/recipe - replaces the
// service's bill-of-materials rows wholesale
func SetServiceRecipe(c *gin.Context) {
	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db := config.GetDB()
	var service models.Service
	if err := db.First(&service, serviceID).Error; err != nil {
		respondError(c, &services.NotFoundError{Resource: "service", ID: serviceID})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", service.ID).Delete(&models.ServiceMaterial{}).Error; err != nil {
			return err
		}
		for _, row := range req.Rows {
			if !row.QuantityNeeded.IsPositive() {
				return &services.ValidationError{Field: "quantity_needed", Message: "recipe quantity must be positive"}
			}
			var count int64
			if err := tx.Model(&models.Material{}).Where("id = ?", row.MaterialID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return &services.NotFoundError{Resource: "material", ID: row.MaterialID}
			}
			entry := models.ServiceMaterial{
				ServiceID:      service.ID,
				MaterialID:     row.MaterialID,
				QuantityNeeded: row.QuantityNeeded,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	var saved []models.ServiceMaterial
	if err := db.Preload("Material").Where("service_id = ?", service.ID).Find(&saved).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    saved,
	})
}
