package handlers

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"foodcourt/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadHandler handles profile image uploads.
type UploadHandler struct {
	service   *services.UploadService
	uploadDir string
}

// NewUploadHandler creates a new UploadHandler. Uploaded files are buffered
// in uploadDir before being pushed to object storage.
func NewUploadHandler(service *services.UploadService, uploadDir string) *UploadHandler {
	return &UploadHandler{service: service, uploadDir: uploadDir}
}

// RegisterRoutes registers the upload routes with the Fiber app.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload-profile-image", h.HandleUploadProfileImage)
}

// HandleUploadProfileImage accepts a multipart form with an "image" file and
// a "user_id" field, stores the image, and returns its public URL.
func (h *UploadHandler) HandleUploadProfileImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "No image file provided")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fail(c, fiber.StatusBadRequest, "Only image files are allowed")
	}

	userID, err := strconv.ParseUint(c.FormValue("user_id"), 10, 32)
	if err != nil || userID == 0 {
		return fail(c, fiber.StatusBadRequest, "Valid user_id is required")
	}

	localPath := filepath.Join(h.uploadDir, fmt.Sprintf("upload-%s%s", uuid.NewString(), filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, localPath); err != nil {
		log.Printf("Error buffering uploaded file: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to store uploaded file")
	}

	url, err := h.service.SaveProfileImage(c.Context(), uint(userID), localPath, file.Filename, contentType)
	if err != nil {
		log.Printf("Error uploading profile image for user %d: %v", userID, err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Profile image uploaded successfully", fiber.Map{
		"image_url": url,
	})
}
