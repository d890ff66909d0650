package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/bersihkilat/laundry-api/utils"
)

// MockPhotoService is a mock implementation of PhotoService for testing
type MockPhotoService struct {
	uploadedPhotos map[string][]byte // map of photo key to file content
	mu             sync.RWMutex
}

// NewMockPhotoService creates a new mock photo service
func NewMockPhotoService() *MockPhotoService {
	return &MockPhotoService{
		uploadedPhotos: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global photo service instance for testing
func (m *MockPhotoService) SetAsMockForTesting() {
	SetPhotoService(m)
}

// UploadPhoto simulates uploading an intake photo
func (m *MockPhotoService) UploadPhoto(fileHeader *multipart.FileHeader) (string, error) {
	// Validate the photo file
	if err := utils.ValidatePhotoFile(fileHeader); err != nil {
		return "", err
	}

	// Open and read the file
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Read file content
	content := make([]byte, fileHeader.Size)
	_, err = file.Read(content)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Generate mock photo key
	photoKey := fmt.Sprintf("order-photos/mock_%s", fileHeader.Filename)

	// Store in mock storage
	m.mu.Lock()
	m.uploadedPhotos[photoKey] = content
	m.mu.Unlock()

	return photoKey, nil
}

// GetPhotoURL simulates generating a URL for a photo
func (m *MockPhotoService) GetPhotoURL(photoKey string) (string, error) {
	if photoKey == "" {
		return "", nil
	}

	// Check if photo exists in mock storage
	m.mu.RLock()
	_, exists := m.uploadedPhotos[photoKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("photo not found in mock storage: %s", photoKey)
	}

	// Return a mock URL
	return fmt.Sprintf("https://test-bucket.s3.ap-southeast-1.amazonaws.com/%s?mock=true", photoKey), nil
}

// DeletePhoto simulates deleting a photo
func (m *MockPhotoService) DeletePhoto(photoKey string) error {
	if photoKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedPhotos, photoKey)
	m.mu.Unlock()

	return nil
}

// PhotoExists checks if a photo exists in mock storage
func (m *MockPhotoService) PhotoExists(photoKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedPhotos[photoKey]
	return exists
}

// Clear removes all photos from mock storage
func (m *MockPhotoService) Clear() {
	m.mu.Lock()
	m.uploadedPhotos = make(map[string][]byte)
	m.mu.Unlock()
}
