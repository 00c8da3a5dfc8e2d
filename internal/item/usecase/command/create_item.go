package command

import (
	"fmt"
	"time"

	"github.com/geotk/marketplace/internal/item/domain"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// CreateItemCommand represents the command to create a new listing
type CreateItemCommand struct {
	Title       string
	CategoryID  uint
	SellerID    uint
	Price       float64
	Description *string
	Condition   string
	Sold        bool
}

// CreateItemHandler handles item creation command
type CreateItemHandler struct {
	items      domain.ItemRepository
	categories domain.CategoryRepository
	users      userdomain.UserRepository
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(items domain.ItemRepository, categories domain.CategoryRepository, users userdomain.UserRepository) *CreateItemHandler {
	return &CreateItemHandler{items: items, categories: categories, users: users}
}

// Handle executes the create item command
func (h *CreateItemHandler) Handle(cmd CreateItemCommand) (*domain.Item, error) {
	// Validation
	if cmd.Title == "" {
		return nil, apperror.Invalidf("title is required")
	}
	if cmd.CategoryID == 0 {
		return nil, apperror.Invalidf("category id is required for an item")
	}
	if cmd.SellerID == 0 {
		return nil, apperror.Invalidf("seller id is required for an item")
	}
	if cmd.Price < 0 {
		return nil, apperror.Invalidf("price cannot be negative")
	}

	if _, err := h.categories.FindByID(cmd.CategoryID); err != nil {
		return nil, apperror.NotFoundf("category not found")
	}
	if _, err := h.users.FindByID(cmd.SellerID); err != nil {
		return nil, apperror.NotFoundf("seller not found")
	}

	item := &domain.Item{
		Title:       cmd.Title,
		CategoryID:  cmd.CategoryID,
		SellerID:    cmd.SellerID,
		Price:       cmd.Price,
		Description: cmd.Description,
		Condition:   cmd.Condition,
		Sold:        cmd.Sold,
		// New listings start unfavorited with no images
		FavoriteCount: 0,
		Images:        []domain.Image{},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.items.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}
