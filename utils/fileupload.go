package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxPhotoSize is 5MB in bytes
	MaxPhotoSize = 5 * 1024 * 1024
)

// allowedPhotoFormats are the accepted intake-photo extensions
var allowedPhotoFormats = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidatePhotoFile validates an uploaded intake photo's format and size
func ValidatePhotoFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxPhotoSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxPhotoSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedPhotoFormats[ext]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only .jpg, .jpeg and .png files are allowed",
		}
	}

	return nil
}

// PhotoContentType returns the MIME type for an accepted photo filename.
// Call ValidatePhotoFile first; unknown extensions fall back to JPEG.
func PhotoContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if contentType, ok := allowedPhotoFormats[ext]; ok {
		return contentType
	}
	return "image/jpeg"
}

