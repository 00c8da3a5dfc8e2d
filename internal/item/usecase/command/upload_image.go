package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/geotk/marketplace/internal/item/domain"
	"github.com/geotk/marketplace/pkg/apperror"
	"github.com/geotk/marketplace/pkg/storage"
)

// UploadImageCommand represents the command to attach an image to a listing
type UploadImageCommand struct {
	ItemID   uint
	FileName string
	Data     []byte
}

// UploadImageHandler handles image upload command
type UploadImageHandler struct {
	items  domain.ItemRepository
	images domain.ImageRepository
	blobs  *storage.LocalStorage
}

// NewUploadImageHandler creates a new upload image handler
func NewUploadImageHandler(items domain.ItemRepository, images domain.ImageRepository, blobs *storage.LocalStorage) *UploadImageHandler {
	return &UploadImageHandler{items: items, images: images, blobs: blobs}
}

// Handle executes the upload image command and returns the updated item
func (h *UploadImageHandler) Handle(cmd UploadImageCommand) (*domain.Item, error) {
	if cmd.ItemID == 0 {
		return nil, apperror.Invalidf("invalid item id")
	}
	if len(cmd.Data) == 0 {
		return nil, apperror.Invalidf("image file is empty")
	}

	if _, err := h.items.FindByID(cmd.ItemID); err != nil {
		return nil, apperror.NotFoundf("item not found")
	}

	// Unique on-disk name, path recorded on the image row
	stored := fmt.Sprintf("%s_%s", uuid.NewString(), cmd.FileName)
	path, err := h.blobs.Store(cmd.Data, stored)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	image := &domain.Image{
		ItemID: cmd.ItemID,
		Path:   path,
	}
	if err := h.images.Create(image); err != nil {
		return nil, fmt.Errorf("failed to create image record: %w", err)
	}

	item, err := h.items.FindByID(cmd.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload item: %w", err)
	}

	return item, nil
}
