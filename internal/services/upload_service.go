package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"foodcourt/internal/repositories"

	"github.com/google/uuid"
)

// Uploader is the slice of the object storage client the upload flow needs.
type Uploader interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) error
	PublicURL(objectPath string) string
}

// UploadService moves profile images from a local temp file into object
// storage and records the public URL on the user.
type UploadService struct {
	userRepo repositories.UserRepository
	store    Uploader
}

// NewUploadService creates a new UploadService. store may be nil when
// object storage is not configured; uploads then fail with an error.
func NewUploadService(userRepo repositories.UserRepository, store Uploader) *UploadService {
	return &UploadService{userRepo: userRepo, store: store}
}

// SaveProfileImage uploads the buffered file at localPath for the given
// user and returns the public image URL. The temp file is removed after
// the upload, whatever the outcome of the user update.
func (s *UploadService) SaveProfileImage(ctx context.Context, userID uint, localPath, originalName, contentType string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		return "", err
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	objectPath := fmt.Sprintf("profile_images/profile-%d-%s%s",
		userID, uuid.NewString(), filepath.Ext(originalName))
	if err := s.store.Upload(ctx, objectPath, data, contentType); err != nil {
		return "", err
	}
	imageURL := s.store.PublicURL(objectPath)

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"profile_image": imageURL}); err != nil {
		return "", err
	}

	if err := os.Remove(localPath); err != nil {
		log.Printf("Warning: failed to remove temp upload %s: %v", localPath, err)
	}

	return imageURL, nil
}
