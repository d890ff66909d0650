package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookingRouter(t *testing.T) (*gin.Engine, uint) {
	t.Helper()
	db := setupControllerTest(t)

	deterjen := seedMaterial(t, db, "Deterjen", "5000")
	service := seedService(t, db, "Cuci Kering", "8000", deterjen.ID, "50")

	router := gin.New()
	router.POST("/bookings", CreateBooking)
	router.GET("/track/:code", TrackOrder)
	return router, service.ID
}

func TestCreateBookingEndpoint(t *testing.T) {
	router, serviceID := setupBookingRouter(t)

	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful booking",
			body: map[string]any{
				"customer_name":  "Budi Santoso",
				"customer_phone": "081234567890",
				"service_id":     serviceID,
				"estimated_qty":  "5",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing phone fails binding",
			body: map[string]any{
				"customer_name": "Budi Santoso",
				"service_id":    serviceID,
				"estimated_qty": "5",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "zero estimated quantity",
			body: map[string]any{
				"customer_name":  "Budi Santoso",
				"customer_phone": "081234567891",
				"service_id":     serviceID,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "unknown service",
			body: map[string]any{
				"customer_name":  "Budi Santoso",
				"customer_phone": "081234567892",
				"service_id":     9999,
				"estimated_qty":  "5",
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, envelope := performRequest(t, router, http.MethodPost, "/bookings", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				assert.Equal(t, false, envelope["success"])
				assert.Equal(t, tt.expectedError, errorCode(t, envelope))
				return
			}

			assert.Equal(t, true, envelope["success"])
			data := dataObject(t, envelope)
			assert.Equal(t, "BOOKED", data["status"])
			assert.Len(t, data["tracking_code"], 6)
			assert.Nil(t, data["created_by_id"], "public booking carries no actor")
		})
	}
}

func TestTrackOrderEndpoint(t *testing.T) {
	router, serviceID := setupBookingRouter(t)

	// Create a booking to look up
	w, envelope := performRequest(t, router, http.MethodPost, "/bookings", map[string]any{
		"customer_name":  "Budi Santoso",
		"customer_phone": "081234567890",
		"service_id":     serviceID,
		"estimated_qty":  "5",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	code := dataObject(t, envelope)["tracking_code"].(string)

	t.Run("found", func(t *testing.T) {
		w, envelope := performRequest(t, router, http.MethodGet, "/track/"+code, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, envelope["success"])

		data := dataObject(t, envelope)
		assert.Equal(t, code, data["tracking_code"])

		customer, ok := data["customer"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Budi Santoso", customer["name"])

		history, ok := data["history"].([]any)
		require.True(t, ok)
		assert.Len(t, history, 1)
	})

	t.Run("not found", func(t *testing.T) {
		w, envelope := performRequest(t, router, http.MethodGet, "/track/NOSUCH", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, envelope))
	})
}
