package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhotoFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{"valid jpg", "shirt.jpg", 1024, ""},
		{"valid jpeg", "shirt.JPEG", 1024, ""},
		{"valid png", "stain.png", MaxPhotoSize, ""},
		{"too large", "huge.jpg", MaxPhotoSize + 1, "FILE_TOO_LARGE"},
		{"gif rejected", "animation.gif", 1024, "INVALID_FILE_FORMAT"},
		{"no extension", "photo", 1024, "INVALID_FILE_FORMAT"},
		{"pdf rejected", "receipt.pdf", 1024, "INVALID_FILE_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}
			err := ValidatePhotoFile(header)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}
			var uploadErr *FileUploadError
			require.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}

func TestPhotoContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", PhotoContentType("shirt.jpg"))
	assert.Equal(t, "image/jpeg", PhotoContentType("shirt.JPEG"))
	assert.Equal(t, "image/png", PhotoContentType("stain.png"))
	assert.Equal(t, "image/jpeg", PhotoContentType("unknown.bin"))
}
