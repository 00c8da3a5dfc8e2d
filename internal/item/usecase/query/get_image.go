package query

import (
	"errors"
	"net/http"

	"github.com/geotk/marketplace/internal/item/domain"
	"github.com/geotk/marketplace/pkg/apperror"
	"github.com/geotk/marketplace/pkg/storage"
)

// GetImageQuery represents the query to fetch stored image bytes
type GetImageQuery struct {
	ID uint
}

// ImageFile is the resolved image content
type ImageFile struct {
	Data        []byte
	ContentType string
}

// GetImageHandler handles image retrieval
type GetImageHandler struct {
	images domain.ImageRepository
	blobs  *storage.LocalStorage
}

// NewGetImageHandler creates a new get image handler
func NewGetImageHandler(images domain.ImageRepository, blobs *storage.LocalStorage) *GetImageHandler {
	return &GetImageHandler{images: images, blobs: blobs}
}

// Handle executes the get image query
func (h *GetImageHandler) Handle(query GetImageQuery) (*ImageFile, error) {
	if query.ID == 0 {
		return nil, apperror.Invalidf("invalid image id")
	}

	image, err := h.images.FindByID(query.ID)
	if err != nil {
		return nil, apperror.NotFoundf("image not found")
	}

	data, err := h.blobs.Retrieve(image.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NotFoundf("image not found")
		}
		return nil, err
	}

	return &ImageFile{
		Data:        data,
		ContentType: http.DetectContentType(data),
	}, nil
}
