package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/services"
)

// CreateMaterialRequest represents the request body for creating a material
type CreateMaterialRequest struct {
	Name          string          `json:"name" binding:"required"`
	Unit          string          `json:"unit" binding:"required"`
	StockQty      decimal.Decimal `json:"stock_qty"`
	MinStockAlert decimal.Decimal `json:"min_stock_alert"`
}

// UpdateMaterialRequest represents the request body for updating a material.
// Stock quantity is deliberately absent: stock changes only go through the
// add/adjust endpoints so the movement ledger stays complete.
type UpdateMaterialRequest struct {
	Name          *string          `json:"name"`
	Unit          *string          `json:"unit"`
	MinStockAlert *decimal.Decimal `json:"min_stock_alert"`
	IsActive      *bool            `json:"is_active"`
}

// StockChangeRequest represents the request body for add/adjust stock operations
type StockChangeRequest struct {
	Qty   decimal.Decimal `json:"qty"`
	Notes *string         `json:"notes"`
}

// ListMaterials handles GET /api/v1/materials
func ListMaterials(c *gin.Context) {
	db := config.GetDB()

	var materials []models.Material
	if err := db.Order("id asc").Find(&materials).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    materials,
	})
}

// CreateMaterial handles POST /api/v1/materials. An opening stock
// quantity is recorded through the ledger so the first movement exists.
func CreateMaterial(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.StockQty.IsNegative() {
		respondError(c, &services.ValidationError{Field: "stock_qty", Message: "opening stock cannot be negative"})
		return
	}

	db := config.GetDB()
	material := models.Material{
		Name:          req.Name,
		Unit:          req.Unit,
		MinStockAlert: req.MinStockAlert,
		IsActive:      true,
	}
	if err := db.Create(&material).Error; err != nil {
		respondError(c, err)
		return
	}

	if req.StockQty.IsPositive() {
		notes := "Opening stock"
		inventory := services.NewInventoryService(db)
		updated, err := inventory.AddStock(material.ID, req.StockQty, &notes, actorID)
		if err != nil {
			respondError(c, err)
			return
		}
		material = *updated
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    material,
	})
}

// UpdateMaterial handles PATCH /api/v1/materials/:id
func UpdateMaterial(c *gin.Context) {
	materialID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db := config.GetDB()
	var material models.Material
	if err := db.First(&material, materialID).Error; err != nil {
		respondError(c, &services.NotFoundError{Resource: "material", ID: materialID})
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.MinStockAlert != nil {
		updates["min_stock_alert"] = *req.MinStockAlert
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := db.Model(&material).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    material,
	})
}

// AddMaterialStock handles POST /api/v1/materials/:id/stock/add -
// manual restock, appends an IN movement
func AddMaterialStock(c *gin.Context) {
	materialID, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req StockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inventory := services.NewInventoryService(config.GetDB())
	material, err := inventory.AddStock(materialID, req.Qty, req.Notes, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    material,
	})
}

// AdjustMaterialStock handles POST /api/v1/materials/:id/stock/adjust -
// manual correction to an absolute quantity, appends an ADJUSTMENT movement
func AdjustMaterialStock(c *gin.Context) {
	materialID, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req StockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inventory := services.NewInventoryService(config.GetDB())
	material, err := inventory.AdjustStock(materialID, req.Qty, req.Notes, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    material,
	})
}

// ListMaterialMovements handles GET /api/v1/materials/:id/movements -
// the material's append-only stock ledger, newest first
func ListMaterialMovements(c *gin.Context) {
	materialID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var movements []models.MaterialStockMovement
	err := db.Where("material_id = ?", materialID).
		Order("created_at desc, id desc").
		Find(&movements).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    movements,
	})
}

// ListLowStockMaterials handles GET /api/v1/materials/low-stock
func ListLowStockMaterials(c *gin.Context) {
	inventory := services.NewInventoryService(config.GetDB())
	materials, err := inventory.LowStockMaterials()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    materials,
	})
}
