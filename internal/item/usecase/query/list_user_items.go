package query

import (
	"fmt"

	"github.com/geotk/marketplace/internal/item/domain"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// ListUserItemsQuery represents the query for a seller's listings
type ListUserItemsQuery struct {
	UserID uint
}

// ListUserItemsHandler handles the seller listings query
type ListUserItemsHandler struct {
	items domain.ItemRepository
	users userdomain.UserRepository
}

// NewListUserItemsHandler creates a new list user items handler
func NewListUserItemsHandler(items domain.ItemRepository, users userdomain.UserRepository) *ListUserItemsHandler {
	return &ListUserItemsHandler{items: items, users: users}
}

// Handle executes the seller listings query
func (h *ListUserItemsHandler) Handle(query ListUserItemsQuery) ([]domain.Item, error) {
	if query.UserID == 0 {
		return nil, apperror.Invalidf("invalid user id")
	}

	if _, err := h.users.FindByID(query.UserID); err != nil {
		return nil, apperror.NotFoundf("user not found")
	}

	items, err := h.items.FindBySeller(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user items: %w", err)
	}

	return items, nil
}
