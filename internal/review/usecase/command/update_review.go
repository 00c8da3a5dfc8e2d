package command

import (
	"fmt"
	"time"

	"github.com/geotk/marketplace/internal/review/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// UpdateReviewCommand represents the command to update a review.
// Nil fields are left untouched (partial update).
type UpdateReviewCommand struct {
	ReviewID   uint
	ReviewerID *uint
	RevieweeID *uint
	Rating     *int
	Comment    *string
	Date       *time.Time
}

// UpdateReviewHandler handles review update command
type UpdateReviewHandler struct {
	reviews domain.ReviewRepository
}

// NewUpdateReviewHandler creates a new update review handler
func NewUpdateReviewHandler(reviews domain.ReviewRepository) *UpdateReviewHandler {
	return &UpdateReviewHandler{reviews: reviews}
}

// Handle executes the update review command
func (h *UpdateReviewHandler) Handle(cmd UpdateReviewCommand) (*domain.Review, error) {
	if cmd.ReviewID == 0 {
		return nil, apperror.Invalidf("invalid review id")
	}

	review, err := h.reviews.FindByID(cmd.ReviewID)
	if err != nil {
		return nil, apperror.NotFoundf("review not found")
	}

	// Authorship is fixed at creation
	if cmd.ReviewerID != nil && *cmd.ReviewerID != review.ReviewerID {
		return nil, apperror.Invalidf("cannot change the reviewer of a review")
	}
	if cmd.RevieweeID != nil && *cmd.RevieweeID != review.RevieweeID {
		return nil, apperror.Invalidf("cannot change the reviewee of a review")
	}

	if cmd.Rating != nil {
		if *cmd.Rating < 1 || *cmd.Rating > 5 {
			return nil, apperror.Invalidf("rating must be between 1 and 5")
		}
		review.Rating = *cmd.Rating
	}
	if cmd.Comment != nil {
		review.Comment = *cmd.Comment
	}
	if cmd.Date != nil {
		review.Date = *cmd.Date
	}
	review.UpdatedAt = time.Now()

	if err := h.reviews.Update(review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return review, nil
}
