package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bersihkilat/laundry-api/models"
)

// ResolveActorID maps the authenticated Auth0 subject to the staff user's
// database id. The service layer takes this as an explicit nullable
// parameter on every entry point; public self-service requests pass nil.
func ResolveActorID(c *gin.Context, db *gorm.DB) (*uint, error) {
	auth0ID, err := GetUserID(c)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &AuthError{Code: "USER_NOT_FOUND", Message: "Staff profile not found. Please create a profile first."}
		}
		return nil, err
	}

	return &user.ID, nil
}
