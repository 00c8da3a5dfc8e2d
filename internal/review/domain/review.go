package domain

import "time"

// Review represents a rating one user leaves for another. A single row keyed
// by reviewer_id and reviewee_id backs both the "written" and "received"
// listings, so the two views can never diverge.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReviewerID uint      `json:"reviewer_id" gorm:"not null;index"`
	RevieweeID uint      `json:"reviewee_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}

// ReviewRepository defines the contract for review data access
type ReviewRepository interface {
	Create(review *Review) error
	FindByID(id uint) (*Review, error)
	FindAll(limit, offset int) ([]Review, error)
	FindByReviewer(reviewerID uint) ([]Review, error)
	FindByReviewee(revieweeID uint) ([]Review, error)
	Update(review *Review) error
	Delete(id uint) error
	Count() (int64, error)
}
