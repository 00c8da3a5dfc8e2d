package command

import (
	"context"
	"fmt"
	"time"

	"github.com/geotk/marketplace/internal/review/domain"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/kafka"
	"github.com/geotk/marketplace/pkg/apperror"
)

// CreateReviewCommand represents the command to create a review
type CreateReviewCommand struct {
	ReviewerID uint
	RevieweeID uint
	Rating     int
	Comment    string
	Date       time.Time
}

// CreateReviewHandler handles review creation command
type CreateReviewHandler struct {
	reviews   domain.ReviewRepository
	users     userdomain.UserRepository
	publisher *kafka.Publisher
}

// NewCreateReviewHandler creates a new create review handler
func NewCreateReviewHandler(reviews domain.ReviewRepository, users userdomain.UserRepository, publisher *kafka.Publisher) *CreateReviewHandler {
	return &CreateReviewHandler{reviews: reviews, users: users, publisher: publisher}
}

// Handle executes the create review command. The single insert makes the
// review visible in the reviewer's written listing and the reviewee's
// received listing at the same instant.
func (h *CreateReviewHandler) Handle(cmd CreateReviewCommand) (*domain.Review, error) {
	if cmd.ReviewerID == 0 || cmd.RevieweeID == 0 {
		return nil, apperror.Invalidf("reviewer id and reviewee id are required")
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, apperror.Invalidf("rating must be between 1 and 5")
	}

	if _, err := h.users.FindByID(cmd.ReviewerID); err != nil {
		return nil, apperror.NotFoundf("reviewer not found")
	}
	if _, err := h.users.FindByID(cmd.RevieweeID); err != nil {
		return nil, apperror.NotFoundf("reviewee not found")
	}

	date := cmd.Date
	if date.IsZero() {
		date = time.Now()
	}

	review := &domain.Review{
		ReviewerID: cmd.ReviewerID,
		RevieweeID: cmd.RevieweeID,
		Rating:     cmd.Rating,
		Comment:    cmd.Comment,
		Date:       date,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := h.reviews.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if h.publisher != nil {
		h.publisher.PublishReviewCreated(context.Background(), kafka.ReviewCreatedEvent{
			ReviewID:   review.ID,
			ReviewerID: review.ReviewerID,
			RevieweeID: review.RevieweeID,
			Rating:     review.Rating,
		})
	}

	return review, nil
}
