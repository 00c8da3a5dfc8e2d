package command

import (
	"fmt"
	"time"

	"github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
	"github.com/geotk/marketplace/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username    string
	FullName    string
	Email       string
	Password    string
	Bio         string
	Country     string
	City        string
	PhoneNumber string
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	// Validation
	if cmd.Username == "" {
		return nil, apperror.Invalidf("username is required")
	}
	if cmd.Email == "" {
		return nil, apperror.Invalidf("email is required")
	}
	if cmd.Password == "" {
		return nil, apperror.Invalidf("password is required")
	}
	if len(cmd.Password) < 6 {
		return nil, apperror.Invalidf("password must be at least 6 characters")
	}
	if cmd.FullName == "" {
		return nil, apperror.Invalidf("full name is required")
	}

	// Check if user already exists
	if existingUser, _ := h.repo.FindByUsername(cmd.Username); existingUser != nil {
		return nil, apperror.Conflictf("username already exists")
	}
	if existingUser, _ := h.repo.FindByEmail(cmd.Email); existingUser != nil {
		return nil, apperror.Conflictf("email already exists")
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:    cmd.Username,
		FullName:    cmd.FullName,
		Email:       cmd.Email,
		Password:    hashedPassword,
		Bio:         cmd.Bio,
		Country:     cmd.Country,
		City:        cmd.City,
		PhoneNumber: cmd.PhoneNumber,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
