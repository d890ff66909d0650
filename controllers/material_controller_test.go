package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bersihkilat/laundry-api/models"
)

func setupMaterialRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := setupControllerTest(t)
	createStaffUser(t, db, testAuth0ID)

	router := gin.New()
	auth := mockAuthMiddleware(testAuth0ID)
	router.GET("/materials", auth, ListMaterials)
	router.GET("/materials/low-stock", auth, ListLowStockMaterials)
	router.POST("/materials", auth, CreateMaterial)
	router.PATCH("/materials/:id", auth, UpdateMaterial)
	router.POST("/materials/:id/stock/add", auth, AddMaterialStock)
	router.POST("/materials/:id/stock/adjust", auth, AdjustMaterialStock)
	router.GET("/materials/:id/movements", auth, ListMaterialMovements)
	return router, db
}

func TestCreateMaterialEndpoint(t *testing.T) {
	router, db := setupMaterialRouter(t)

	w, envelope := performRequest(t, router, http.MethodPost, "/materials", map[string]any{
		"name":            "Deterjen",
		"unit":            "gram",
		"stock_qty":       "5000",
		"min_stock_alert": "1000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataObject(t, envelope)
	materialID := uint(data["id"].(float64))

	// Opening stock goes through the ledger, never a raw column write
	var movements []models.MaterialStockMovement
	require.NoError(t, db.Where("material_id = ?", materialID).Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, models.MovementIn, movements[0].Type)
	assert.Equal(t, "5000", movements[0].Quantity.String())
	require.NotNil(t, movements[0].Notes)
	assert.Equal(t, "Opening stock", *movements[0].Notes)

	var material models.Material
	require.NoError(t, db.First(&material, materialID).Error)
	assert.Equal(t, "5000", material.StockQty.String())
}

func TestCreateMaterialWithoutOpeningStock(t *testing.T) {
	router, db := setupMaterialRouter(t)

	w, envelope := performRequest(t, router, http.MethodPost, "/materials", map[string]any{
		"name": "Plastik",
		"unit": "pcs",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	materialID := uint(dataObject(t, envelope)["id"].(float64))

	var count int64
	db.Model(&models.MaterialStockMovement{}).Where("material_id = ?", materialID).Count(&count)
	assert.Equal(t, int64(0), count, "zero opening stock writes no movement")
}

func TestCreateMaterialNegativeOpeningStock(t *testing.T) {
	router, _ := setupMaterialRouter(t)

	w, envelope := performRequest(t, router, http.MethodPost, "/materials", map[string]any{
		"name":      "Deterjen",
		"unit":      "gram",
		"stock_qty": "-5",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, envelope))
}

func TestStockAddAndAdjustEndpoints(t *testing.T) {
	router, db := setupMaterialRouter(t)
	material := seedMaterial(t, db, "Pewangi", "300")

	t.Run("add stock", func(t *testing.T) {
		w, envelope := performRequest(t, router, http.MethodPost,
			fmt.Sprintf("/materials/%d/stock/add", material.ID),
			map[string]any{"qty": "200", "notes": "Supplier delivery"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "500", dataObject(t, envelope)["stock_qty"].(string))
	})

	t.Run("add rejects non-positive", func(t *testing.T) {
		w, envelope := performRequest(t, router, http.MethodPost,
			fmt.Sprintf("/materials/%d/stock/add", material.ID),
			map[string]any{"qty": "0"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, envelope))
	})

	t.Run("adjust to absolute quantity", func(t *testing.T) {
		w, envelope := performRequest(t, router, http.MethodPost,
			fmt.Sprintf("/materials/%d/stock/adjust", material.ID),
			map[string]any{"qty": "450", "notes": "Physical count"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "450", dataObject(t, envelope)["stock_qty"].(string))
	})

	t.Run("movements ledger lists both", func(t *testing.T) {
		w, envelope := performRequest(t, router, http.MethodGet,
			fmt.Sprintf("/materials/%d/movements", material.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		movements, ok := envelope["data"].([]any)
		require.True(t, ok)
		assert.Len(t, movements, 2)
	})

	t.Run("unknown material", func(t *testing.T) {
		w, envelope := performRequest(t, router, http.MethodPost,
			"/materials/9999/stock/add", map[string]any{"qty": "10"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, envelope))
	})
}

func TestUpdateMaterialEndpoint(t *testing.T) {
	router, db := setupMaterialRouter(t)
	material := seedMaterial(t, db, "Pewangi", "300")

	w, _ := performRequest(t, router, http.MethodPatch,
		fmt.Sprintf("/materials/%d", material.ID),
		map[string]any{"min_stock_alert": "150", "is_active": false})
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Material
	require.NoError(t, db.First(&reloaded, material.ID).Error)
	assert.Equal(t, "150", reloaded.MinStockAlert.String())
	assert.False(t, reloaded.IsActive)
	assert.Equal(t, "300", reloaded.StockQty.String(), "update endpoint never touches stock")
}

func TestLowStockEndpoint(t *testing.T) {
	router, db := setupMaterialRouter(t)
	seedMaterial(t, db, "Deterjen", "5000")
	low := seedMaterial(t, db, "Pewangi", "40")
	require.NoError(t, db.Model(low).Update("min_stock_alert", "100").Error)

	w, envelope := performRequest(t, router, http.MethodGet, "/materials/low-stock", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	materials, ok := envelope["data"].([]any)
	require.True(t, ok)
	require.Len(t, materials, 1)
	assert.Equal(t, "Pewangi", materials[0].(map[string]any)["name"])
}
