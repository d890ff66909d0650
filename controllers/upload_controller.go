package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/services"
)

// UploadOrderPhoto handles POST /api/v1/orders/:id/photo - attaches an
// intake condition photo to an order. Replacing an existing photo deletes
// the old object from storage.
func UploadOrderPhoto(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "A photo file is required in the 'photo' form field",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		respondError(c, &services.NotFoundError{Resource: "order", ID: orderID})
		return
	}

	photoService := services.GetPhotoService()
	if photoService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Photo storage is not configured",
			},
		})
		return
	}

	photoKey, err := photoService.UploadPhoto(fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	oldKey := order.PhotoS3Key
	updates := map[string]any{
		"photo_s3_key":  photoKey,
		"updated_by_id": actorID,
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		respondError(c, err)
		return
	}

	history := models.OrderHistory{
		OrderID:     order.ID,
		Status:      order.Status,
		Action:      models.ActionUpdated,
		Note:        "Intake photo attached",
		CreatedByID: actorID,
	}
	if err := db.Create(&history).Error; err != nil {
		respondError(c, err)
		return
	}

	if oldKey != nil {
		// Old photo cleanup failure is not worth failing the upload over
		_ = photoService.DeletePhoto(*oldKey)
	}

	url, _ := photoService.GetPhotoURL(photoKey)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"photo_s3_key": photoKey,
			"photo_url":    url,
		},
	})
}
