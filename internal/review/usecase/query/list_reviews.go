package query

import (
	"fmt"

	"github.com/geotk/marketplace/internal/review/domain"
)

// ListReviewsQuery represents the query to list reviews
type ListReviewsQuery struct {
	Limit  int
	Offset int
}

// ListReviewsHandler handles list reviews query
type ListReviewsHandler struct {
	reviews domain.ReviewRepository
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(reviews domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{reviews: reviews}
}

// Handle executes the list reviews query
func (h *ListReviewsHandler) Handle(query ListReviewsQuery) ([]domain.Review, error) {
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 10
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	reviews, err := h.reviews.FindAll(query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}
