package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/tests/testutil"
)

// setupControllerTest opens an in-memory sqlite database, installs it as
// the global handler database, and returns it
func setupControllerTest(t *testing.T) *gorm.DB {
	t.Helper()
	testutil.MustSetTestEnvironment(t)
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.ServiceMaterial{},
		&models.Material{},
		&models.MaterialStockMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderHistory{},
		&models.Employee{},
		&models.Expense{},
		&models.Asset{},
	)
	require.NoError(t, err, "Failed to migrate test database")

	config.SetDB(db)
	return db
}

// mockAuthMiddleware simulates EnsureValidToken by injecting the Auth0
// subject the way the real middleware does after JWT validation
func mockAuthMiddleware(auth0ID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Next()
	}
}

// createStaffUser inserts a staff profile so ResolveActorID succeeds for auth0ID
func createStaffUser(t *testing.T, db *gorm.DB, auth0ID string) *models.User {
	t.Helper()
	user := models.User{
		Auth0ID: auth0ID,
		Name:    "Test Staff",
		Email:   auth0ID + "@example.com",
		Role:    "staff",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func seedMaterial(t *testing.T, db *gorm.DB, name, stock string) *models.Material {
	t.Helper()
	material := models.Material{
		Name:     name,
		Unit:     "gram",
		StockQty: mustDecimal(t, stock),
		IsActive: true,
	}
	require.NoError(t, db.Create(&material).Error)
	return &material
}

func seedService(t *testing.T, db *gorm.DB, name, price string, materialID uint, perUnit string) *models.Service {
	t.Helper()
	service := models.Service{
		Name:              name,
		Price:             mustDecimal(t, price),
		Unit:              models.ServiceUnitKg,
		ExpressMultiplier: decimal.NewFromInt(1),
		IsActive:          true,
	}
	require.NoError(t, db.Create(&service).Error)
	if materialID != 0 {
		row := models.ServiceMaterial{
			ServiceID:      service.ID,
			MaterialID:     materialID,
			QuantityNeeded: mustDecimal(t, perUnit),
		}
		require.NoError(t, db.Create(&row).Error)
	}
	return &service
}

// performRequest executes an HTTP request against the router and decodes
// the JSON envelope
func performRequest(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), "response is not valid JSON: %s", w.Body.String())
	}
	return w, envelope
}

func errorCode(t *testing.T, envelope map[string]any) string {
	t.Helper()
	errObj, ok := envelope["error"].(map[string]any)
	require.True(t, ok, "envelope has no error object: %v", envelope)
	code, _ := errObj["code"].(string)
	return code
}

func dataObject(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "envelope has no data object: %v", envelope)
	return data
}
