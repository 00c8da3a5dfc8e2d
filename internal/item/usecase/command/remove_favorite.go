package command

import (
	"github.com/geotk/marketplace/internal/item/domain"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// RemoveFavoriteCommand represents the command to unfavorite a listing
type RemoveFavoriteCommand struct {
	UserID uint
	ItemID uint
}

// RemoveFavoriteHandler handles the remove favorite command
type RemoveFavoriteHandler struct {
	items domain.ItemRepository
	users userdomain.UserRepository
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(items domain.ItemRepository, users userdomain.UserRepository) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{items: items, users: users}
}

// Handle executes the remove favorite command
func (h *RemoveFavoriteHandler) Handle(cmd RemoveFavoriteCommand) error {
	if cmd.UserID == 0 || cmd.ItemID == 0 {
		return apperror.Invalidf("user id and item id are required")
	}

	if _, err := h.users.FindByID(cmd.UserID); err != nil {
		return apperror.NotFoundf("user not found")
	}

	return h.items.RemoveFavorite(cmd.UserID, cmd.ItemID)
}
