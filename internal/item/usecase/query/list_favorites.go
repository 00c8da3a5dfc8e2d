package query

import (
	"fmt"

	"github.com/geotk/marketplace/internal/item/domain"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// ListFavoritesQuery represents the query for a user's favorite items
type ListFavoritesQuery struct {
	UserID uint
}

// ListFavoritesHandler handles the favorites query
type ListFavoritesHandler struct {
	items domain.ItemRepository
	users userdomain.UserRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(items domain.ItemRepository, users userdomain.UserRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{items: items, users: users}
}

// Handle executes the favorites query
func (h *ListFavoritesHandler) Handle(query ListFavoritesQuery) ([]domain.Item, error) {
	if query.UserID == 0 {
		return nil, apperror.Invalidf("invalid user id")
	}

	if _, err := h.users.FindByID(query.UserID); err != nil {
		return nil, apperror.NotFoundf("user not found")
	}

	items, err := h.items.FindFavoritesOfUser(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return items, nil
}
