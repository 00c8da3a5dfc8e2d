package command

import (
	"github.com/geotk/marketplace/internal/item/domain"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// AddFavoriteCommand represents the command to favorite a listing
type AddFavoriteCommand struct {
	UserID uint
	ItemID uint
}

// AddFavoriteHandler handles the add favorite command
type AddFavoriteHandler struct {
	items domain.ItemRepository
	users userdomain.UserRepository
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(items domain.ItemRepository, users userdomain.UserRepository) *AddFavoriteHandler {
	return &AddFavoriteHandler{items: items, users: users}
}

// Handle executes the add favorite command. The membership insert and the
// counter increment happen in one repository transaction.
func (h *AddFavoriteHandler) Handle(cmd AddFavoriteCommand) error {
	if cmd.UserID == 0 || cmd.ItemID == 0 {
		return apperror.Invalidf("user id and item id are required")
	}

	if _, err := h.users.FindByID(cmd.UserID); err != nil {
		return apperror.NotFoundf("user not found")
	}

	return h.items.AddFavorite(cmd.UserID, cmd.ItemID)
}
