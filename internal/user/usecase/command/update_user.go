package command

import (
	"fmt"
	"time"

	"github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// UpdateUserCommand represents the command to update a user profile.
// Nil fields are left untouched (partial update).
type UpdateUserCommand struct {
	ID          uint
	FullName    *string
	Email       *string
	Bio         *string
	Country     *string
	City        *string
	PhoneNumber *string
}

// UpdateUserHandler handles user profile update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	if cmd.ID == 0 {
		return nil, apperror.Invalidf("invalid user id")
	}

	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, apperror.NotFoundf("user not found")
	}

	if cmd.Email != nil && *cmd.Email != user.Email {
		if existing, _ := h.repo.FindByEmail(*cmd.Email); existing != nil {
			return nil, apperror.Conflictf("email already exists")
		}
		user.Email = *cmd.Email
	}

	if cmd.FullName != nil {
		user.FullName = *cmd.FullName
	}
	if cmd.Bio != nil {
		user.Bio = *cmd.Bio
	}
	if cmd.Country != nil {
		user.Country = *cmd.Country
	}
	if cmd.City != nil {
		user.City = *cmd.City
	}
	if cmd.PhoneNumber != nil {
		user.PhoneNumber = *cmd.PhoneNumber
	}
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
