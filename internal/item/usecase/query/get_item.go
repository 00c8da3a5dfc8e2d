package query

import (
	"github.com/geotk/marketplace/internal/item/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// GetItemQuery represents the query to get an item by ID
type GetItemQuery struct {
	ID uint
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	items domain.ItemRepository
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(items domain.ItemRepository) *GetItemHandler {
	return &GetItemHandler{items: items}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(query GetItemQuery) (*domain.Item, error) {
	if query.ID == 0 {
		return nil, apperror.Invalidf("invalid item id")
	}

	item, err := h.items.FindByID(query.ID)
	if err != nil {
		return nil, apperror.NotFoundf("item not found")
	}

	return item, nil
}
