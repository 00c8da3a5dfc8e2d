package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/geotk/marketplace/internal/item/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{}, &domain.Item{}, &domain.Image{}, &domain.Favorite{})
}

func (r *GormItemRepository) Create(item *domain.Item) error {
	return r.db.Create(item).Error
}

func (r *GormItemRepository) FindByID(id uint) (*domain.Item, error) {
	var item domain.Item
	err := r.db.Preload("Images").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) FindAll(limit, offset int) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Preload("Images").Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

func (r *GormItemRepository) FindBySeller(sellerID uint) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Preload("Images").Where("seller_id = ?", sellerID).Find(&items).Error
	return items, err
}

func (r *GormItemRepository) FindByCategory(categoryID uint, limit, offset int) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Preload("Images").Where("category_id = ?", categoryID).Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

func (r *GormItemRepository) Update(item *domain.Item) error {
	return r.db.Save(item).Error
}

func (r *GormItemRepository) Delete(id uint) error {
	// Image rows go with the item. The FK constraint covers hard deletes;
	// with soft-deleted items the rows are removed explicitly.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&domain.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Item{}, id).Error
	})
}

func (r *GormItemRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Item{}).Count(&count).Error
	return count, err
}

func (r *GormItemRepository) CountSold() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Item{}).Where("sold = ?", true).Count(&count).Error
	return count, err
}

// lockForUpdate takes a row lock where the dialect supports it. SQLite has no
// FOR UPDATE; its single-writer model already serializes the transaction.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// AddFavorite inserts the membership row and increments the denormalized
// counter in one transaction. Favoriting an already-favorited item is a no-op;
// favoriting your own listing is rejected.
func (r *GormItemRepository) AddFavorite(userID, itemID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item domain.Item
		if err := lockForUpdate(tx).First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("item not found")
			}
			return err
		}

		if item.SellerID == userID {
			return apperror.Invalidf("cannot favorite your own listing")
		}

		var existing domain.Favorite
		err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&existing).Error
		if err == nil {
			// Idempotent add: membership unchanged, counter untouched
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&domain.Favorite{UserID: userID, ItemID: itemID}).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Item{}).
			Where("id = ?", itemID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + ?", 1)).Error
	})
}

// RemoveFavorite deletes the membership row and decrements the counter,
// which never drops below zero.
func (r *GormItemRepository) RemoveFavorite(userID, itemID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item domain.Item
		if err := lockForUpdate(tx).First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("item not found")
			}
			return err
		}

		res := tx.Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&domain.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NotFoundf("item is not in favorites")
		}

		return tx.Model(&domain.Item{}).
			Where("id = ? AND favorite_count > 0", itemID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count - ?", 1)).Error
	})
}

func (r *GormItemRepository) FindFavoritesOfUser(userID uint) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Preload("Images").
		Joins("JOIN favorites ON favorites.item_id = items.id").
		Where("favorites.user_id = ?", userID).
		Find(&items).Error
	return items, err
}

func (r *GormItemRepository) IsFavorite(userID, itemID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error
	return count > 0, err
}
