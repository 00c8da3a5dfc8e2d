package command

import (
	"fmt"

	"github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
	"github.com/geotk/marketplace/pkg/auth"
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	// Validation
	if cmd.Username == "" {
		return nil, apperror.Invalidf("username is required")
	}
	if cmd.Password == "" {
		return nil, apperror.Invalidf("password is required")
	}

	// Find user by username
	user, err := h.repo.FindByUsername(cmd.Username)
	if err != nil {
		return nil, apperror.Invalidf("invalid username or password")
	}

	// Verify password
	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, apperror.Invalidf("invalid username or password")
	}

	// Generate JWT token
	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}
