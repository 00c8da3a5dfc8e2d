package query

import (
	"fmt"

	"github.com/geotk/marketplace/internal/user/domain"
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Limit  int
	Offset int
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(query ListUsersQuery) ([]domain.User, error) {
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 10
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	users, err := h.repo.FindAll(query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
