package query

import (
	"fmt"

	"github.com/geotk/marketplace/internal/item/domain"
)

// ListItemsQuery represents the query to list items
type ListItemsQuery struct {
	Limit      int
	Offset     int
	CategoryID uint
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	items domain.ItemRepository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(items domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{items: items}
}

// Handle executes the list items query
func (h *ListItemsHandler) Handle(query ListItemsQuery) ([]domain.Item, error) {
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 10
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	var (
		items []domain.Item
		err   error
	)
	if query.CategoryID != 0 {
		items, err = h.items.FindByCategory(query.CategoryID, query.Limit, query.Offset)
	} else {
		items, err = h.items.FindAll(query.Limit, query.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}
