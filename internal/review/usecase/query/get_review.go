package query

import (
	"github.com/geotk/marketplace/internal/review/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// GetReviewQuery represents the query to get a review by ID
type GetReviewQuery struct {
	ID uint
}

// GetReviewHandler handles get review query
type GetReviewHandler struct {
	reviews domain.ReviewRepository
}

// NewGetReviewHandler creates a new get review handler
func NewGetReviewHandler(reviews domain.ReviewRepository) *GetReviewHandler {
	return &GetReviewHandler{reviews: reviews}
}

// Handle executes the get review query
func (h *GetReviewHandler) Handle(query GetReviewQuery) (*domain.Review, error) {
	if query.ID == 0 {
		return nil, apperror.Invalidf("invalid review id")
	}

	review, err := h.reviews.FindByID(query.ID)
	if err != nil {
		return nil, apperror.NotFoundf("review not found")
	}

	return review, nil
}
