package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"gorm.io/gorm"

	"github.com/bersihkilat/laundry-api/models"
)

const (
	// publicAlphabet excludes glyphs customers confuse when typing a code
	// from a receipt or SMS: 0/O, 1/I/L.
	publicAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	fullAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	publicCodeLength = 6
	walkInCodeLength = 10

	maxCodeAttempts = 10
)

// GenerateTrackingCode produces a collision-checked public tracking code.
// Booking codes are short and drawn from the unambiguous alphabet; walk-in
// codes are longer full-alphanumeric ones.
func GenerateTrackingCode(tx *gorm.DB, public bool) (string, error) {
	alphabet, length := fullAlphabet, walkInCodeLength
	if public {
		alphabet, length = publicAlphabet, publicCodeLength
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomCode(alphabet, length)
		if err != nil {
			return "", err
		}

		var count int64
		if err := tx.Model(&models.Order{}).Where("tracking_code = ?", code).Count(&count).Error; err != nil {
			return "", classifyDBError(err)
		}
		if count == 0 {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique tracking code after %d attempts", maxCodeAttempts)
}

func randomCode(alphabet string, length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
