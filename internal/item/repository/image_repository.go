package repository

import (
	"github.com/geotk/marketplace/internal/item/domain"
	"gorm.io/gorm"
)

type GormImageRepository struct {
	db *gorm.DB
}

func NewGormImageRepository(db *gorm.DB) *GormImageRepository {
	return &GormImageRepository{db: db}
}

func (r *GormImageRepository) Create(image *domain.Image) error {
	return r.db.Create(image).Error
}

func (r *GormImageRepository) FindByID(id uint) (*domain.Image, error) {
	var image domain.Image
	err := r.db.First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *GormImageRepository) FindByItem(itemID uint) ([]domain.Image, error) {
	var images []domain.Image
	err := r.db.Where("item_id = ?", itemID).Find(&images).Error
	return images, err
}

func (r *GormImageRepository) Update(image *domain.Image) error {
	return r.db.Save(image).Error
}

func (r *GormImageRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Image{}, id).Error
}
