package query

import (
	"fmt"

	"github.com/geotk/marketplace/internal/review/domain"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// ListWrittenReviewsQuery represents the query for reviews a user wrote
type ListWrittenReviewsQuery struct {
	UserID uint
}

// ListReceivedReviewsQuery represents the query for reviews a user received
type ListReceivedReviewsQuery struct {
	UserID uint
}

// ListUserReviewsHandler handles both per-user review listings
type ListUserReviewsHandler struct {
	reviews domain.ReviewRepository
	users   userdomain.UserRepository
}

// NewListUserReviewsHandler creates a new list user reviews handler
func NewListUserReviewsHandler(reviews domain.ReviewRepository, users userdomain.UserRepository) *ListUserReviewsHandler {
	return &ListUserReviewsHandler{reviews: reviews, users: users}
}

// HandleWritten returns the reviews the user authored
func (h *ListUserReviewsHandler) HandleWritten(query ListWrittenReviewsQuery) ([]domain.Review, error) {
	if err := h.checkUser(query.UserID); err != nil {
		return nil, err
	}

	reviews, err := h.reviews.FindByReviewer(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list written reviews: %w", err)
	}

	return reviews, nil
}

// HandleReceived returns the reviews written about the user
func (h *ListUserReviewsHandler) HandleReceived(query ListReceivedReviewsQuery) ([]domain.Review, error) {
	if err := h.checkUser(query.UserID); err != nil {
		return nil, err
	}

	reviews, err := h.reviews.FindByReviewee(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received reviews: %w", err)
	}

	return reviews, nil
}

func (h *ListUserReviewsHandler) checkUser(userID uint) error {
	if userID == 0 {
		return apperror.Invalidf("invalid user id")
	}
	if _, err := h.users.FindByID(userID); err != nil {
		return apperror.NotFoundf("user not found")
	}
	return nil
}
