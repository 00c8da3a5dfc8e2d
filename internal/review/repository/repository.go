package repository

import (
	"github.com/geotk/marketplace/internal/review/domain"
	"gorm.io/gorm"
)

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Review{})
}

func (r *GormReviewRepository) Create(review *domain.Review) error {
	return r.db.Create(review).Error
}

func (r *GormReviewRepository) FindByID(id uint) (*domain.Review, error) {
	var review domain.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) FindAll(limit, offset int) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, err
}

func (r *GormReviewRepository) FindByReviewer(reviewerID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("reviewer_id = ?", reviewerID).Find(&reviews).Error
	return reviews, err
}

func (r *GormReviewRepository) FindByReviewee(revieweeID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("reviewee_id = ?", revieweeID).Find(&reviews).Error
	return reviews, err
}

func (r *GormReviewRepository) Update(review *domain.Review) error {
	return r.db.Save(review).Error
}

func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Review{}, id).Error
}

func (r *GormReviewRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Review{}).Count(&count).Error
	return count, err
}
