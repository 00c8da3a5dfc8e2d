package command

import (
	"context"
	"fmt"
	"time"

	"github.com/geotk/marketplace/internal/item/domain"
	"github.com/geotk/marketplace/kafka"
	"github.com/geotk/marketplace/pkg/apperror"
)

// UpdateItemCommand represents the command to update a listing.
// Nil fields are left untouched (partial update).
type UpdateItemCommand struct {
	ItemID      uint
	ID          *uint
	Title       *string
	CategoryID  *uint
	SellerID    *uint
	Price       *float64
	Description *string
	Condition   *string
	Sold        *bool
}

// UpdateItemHandler handles item update command
type UpdateItemHandler struct {
	items      domain.ItemRepository
	categories domain.CategoryRepository
	publisher  *kafka.Publisher
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(items domain.ItemRepository, categories domain.CategoryRepository, publisher *kafka.Publisher) *UpdateItemHandler {
	return &UpdateItemHandler{items: items, categories: categories, publisher: publisher}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(cmd UpdateItemCommand) (*domain.Item, error) {
	if cmd.ItemID == 0 {
		return nil, apperror.Invalidf("invalid item id")
	}

	item, err := h.items.FindByID(cmd.ItemID)
	if err != nil {
		return nil, apperror.NotFoundf("item not found")
	}

	// The record id is not client-writable
	if cmd.ID != nil && *cmd.ID != item.ID {
		return nil, apperror.Invalidf("the 'id' in the request body does not match the resource id in the URL")
	}

	// The seller is fixed at creation
	if cmd.SellerID != nil && *cmd.SellerID != item.SellerID {
		return nil, apperror.Invalidf("cannot change the seller of an item")
	}

	if cmd.CategoryID != nil {
		if _, err := h.categories.FindByID(*cmd.CategoryID); err != nil {
			return nil, apperror.NotFoundf("category not found")
		}
		item.CategoryID = *cmd.CategoryID
	}

	wasSold := item.Sold

	if cmd.Title != nil {
		item.Title = *cmd.Title
	}
	if cmd.Price != nil {
		item.Price = *cmd.Price
	}
	if cmd.Description != nil {
		item.Description = cmd.Description
	}
	if cmd.Condition != nil {
		item.Condition = *cmd.Condition
	}
	if cmd.Sold != nil {
		item.Sold = *cmd.Sold
	}
	item.UpdatedAt = time.Now()

	if err := h.items.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if h.publisher != nil && !wasSold && item.Sold {
		h.publisher.PublishItemSold(context.Background(), kafka.ItemSoldEvent{
			ItemID:   item.ID,
			SellerID: item.SellerID,
			Title:    item.Title,
			Price:    item.Price,
		})
	}

	return item, nil
}
