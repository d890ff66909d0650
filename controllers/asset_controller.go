package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/services"
)

// CreateAssetRequest represents the request body for registering an asset
type CreateAssetRequest struct {
	Name             string          `json:"name" binding:"required"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	UsefulLifeMonths int             `json:"useful_life_months" binding:"required,gt=0"`
	PurchasedAt      *time.Time      `json:"purchased_at"`
}

// assetResponse augments an asset with its depreciated value, computed on read
type assetResponse struct {
	models.Asset
	CurrentValue decimal.Decimal `json:"current_value"`
}

// ListAssets handles GET /api/v1/assets - each asset carries its
// straight-line depreciated current value
func ListAssets(c *gin.Context) {
	var assets []models.Asset
	if err := config.GetDB().Order("id asc").Find(&assets).Error; err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	responses := make([]assetResponse, len(assets))
	for i, asset := range assets {
		responses[i] = assetResponse{Asset: asset, CurrentValue: asset.CurrentValue(now)}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    responses,
	})
}

// CreateAsset handles POST /api/v1/assets
func CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !req.PurchasePrice.IsPositive() {
		respondError(c, &services.ValidationError{Field: "purchase_price", Message: "purchase price must be positive"})
		return
	}

	purchasedAt := time.Now()
	if req.PurchasedAt != nil {
		purchasedAt = *req.PurchasedAt
	}

	asset := models.Asset{
		Name:             req.Name,
		PurchasePrice:    req.PurchasePrice,
		UsefulLifeMonths: req.UsefulLifeMonths,
		PurchasedAt:      purchasedAt,
		IsActive:         true,
	}
	if err := config.GetDB().Create(&asset).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    assetResponse{Asset: asset, CurrentValue: asset.CurrentValue(time.Now())},
	})
}

// DeleteAsset handles DELETE /api/v1/assets/:id (soft delete)
func DeleteAsset(c *gin.Context) {
	assetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.GetDB().Delete(&models.Asset{}, assetID)
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, &services.NotFoundError{Resource: "asset", ID: assetID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Asset deleted",
	})
}
