package command

import (
	"fmt"

	"github.com/geotk/marketplace/internal/review/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

// DeleteReviewCommand represents the command to delete a review
type DeleteReviewCommand struct {
	ReviewID uint
}

// DeleteReviewHandler handles review deletion command
type DeleteReviewHandler struct {
	reviews domain.ReviewRepository
}

// NewDeleteReviewHandler creates a new delete review handler
func NewDeleteReviewHandler(reviews domain.ReviewRepository) *DeleteReviewHandler {
	return &DeleteReviewHandler{reviews: reviews}
}

// Handle executes the delete review command. Deleting the row detaches the
// review from the written and received listings in one step.
func (h *DeleteReviewHandler) Handle(cmd DeleteReviewCommand) error {
	if cmd.ReviewID == 0 {
		return apperror.Invalidf("invalid review id")
	}

	if _, err := h.reviews.FindByID(cmd.ReviewID); err != nil {
		return apperror.NotFoundf("review not found")
	}

	if err := h.reviews.Delete(cmd.ReviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}
