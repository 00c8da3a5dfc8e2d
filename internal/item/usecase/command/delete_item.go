package command

import (
	"fmt"

	"github.com/geotk/marketplace/internal/item/domain"
	"github.com/geotk/marketplace/pkg/apperror"
	"github.com/geotk/marketplace/pkg/logger"
	"github.com/geotk/marketplace/pkg/storage"
)

// DeleteItemCommand represents the command to delete a listing
type DeleteItemCommand struct {
	ItemID uint
}

// DeleteItemHandler handles item deletion command
type DeleteItemHandler struct {
	items  domain.ItemRepository
	images domain.ImageRepository
	blobs  *storage.LocalStorage
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(items domain.ItemRepository, images domain.ImageRepository, blobs *storage.LocalStorage) *DeleteItemHandler {
	return &DeleteItemHandler{items: items, images: images, blobs: blobs}
}

// Handle executes the delete item command. Image rows cascade with the item;
// stored files are cleaned up best-effort.
func (h *DeleteItemHandler) Handle(cmd DeleteItemCommand) error {
	if cmd.ItemID == 0 {
		return apperror.Invalidf("invalid item id")
	}

	if _, err := h.items.FindByID(cmd.ItemID); err != nil {
		return apperror.NotFoundf("item not found")
	}

	images, err := h.images.FindByItem(cmd.ItemID)
	if err != nil {
		return fmt.Errorf("failed to load item images: %w", err)
	}

	if err := h.items.Delete(cmd.ItemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if h.blobs != nil {
		for _, image := range images {
			if err := h.blobs.Remove(image.Path); err != nil {
				logger.Logger.Warn().
					Err(err).
					Uint("image_id", image.ID).
					Str("path", image.Path).
					Msg("Failed to remove stored image file")
			}
		}
	}

	return nil
}
