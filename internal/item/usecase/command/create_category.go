package command

import (
	"fmt"

	"github.com/geotk/marketplace/internal/item/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	Name string
}

// CreateCategoryHandler handles category creation command
type CreateCategoryHandler struct {
	categories domain.CategoryRepository
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(categories domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{categories: categories}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(cmd CreateCategoryCommand) (*domain.Category, error) {
	if cmd.Name == "" {
		return nil, apperror.Invalidf("category name is required")
	}

	if existing, _ := h.categories.FindByName(cmd.Name); existing != nil {
		return nil, apperror.Conflictf("category already exists")
	}

	category := &domain.Category{Name: cmd.Name}
	if err := h.categories.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}
