package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bersihkilat/laundry-api/services"
	"github.com/bersihkilat/laundry-api/utils"
)

// respondError translates a service-layer error into the JSON error
// envelope. Structured details (shortages, allowed transitions) are
// passed through so the UI can present actionable next steps.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var uploadErr *utils.FileUploadError
	var notFoundErr *services.NotFoundError
	var stateErr *services.InvalidStateError
	var transitionErr *services.InvalidTransitionError
	var stockErr *services.InsufficientStockError
	var lockErr *services.LockTimeoutError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": validationErr.Error(),
			},
		})
	case errors.As(err, &uploadErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"message": uploadErr.Message,
			},
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": notFoundErr.Error(),
			},
		})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATE",
				"message": stateErr.Error(),
			},
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": transitionErr.Error(),
				"details": gin.H{
					"current_status":   transitionErr.Current,
					"allowed_statuses": transitionErr.Allowed,
				},
			},
		})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INSUFFICIENT_STOCK",
				"message": stockErr.Error(),
				"details": gin.H{
					"shortages": stockErr.Shortages,
				},
			},
		})
	case errors.As(err, &lockErr):
		// Retryable: the client may repeat the whole request once
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LOCK_TIMEOUT",
				"message": "The operation timed out waiting for a lock. Please retry.",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "An unexpected error occurred",
			},
		})
	}
}

// respondBindError reports a request-body parsing failure
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}
