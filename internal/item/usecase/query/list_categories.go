package query

import (
	"fmt"

	"github.com/geotk/marketplace/internal/item/domain"
)

// ListCategoriesQuery represents the query to list all categories
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles list categories query
type ListCategoriesHandler struct {
	categories domain.CategoryRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(categories domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{categories: categories}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(ListCategoriesQuery) ([]domain.Category, error) {
	categories, err := h.categories.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}
