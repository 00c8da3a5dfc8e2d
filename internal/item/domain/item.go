package domain

import (
	"time"

	"gorm.io/gorm"
)

// Item represents a marketplace listing. The seller is fixed at creation and
// FavoriteCount is derived from the favorites relation, never set by clients.
type Item struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" gorm:"not null"`
	CategoryID    uint           `json:"category_id" gorm:"not null;index"`
	SellerID      uint           `json:"seller_id" gorm:"not null;index"`
	Price         float64        `json:"price" gorm:"not null"`
	Description   *string        `json:"description"`
	Condition     string         `json:"condition"`
	Sold          bool           `json:"sold" gorm:"default:false"`
	FavoriteCount int            `json:"favorite_count" gorm:"not null;default:0"`
	Images        []Image        `json:"images" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// ItemRepository defines the contract for item data access
type ItemRepository interface {
	Create(item *Item) error
	FindByID(id uint) (*Item, error)
	FindAll(limit, offset int) ([]Item, error)
	FindBySeller(sellerID uint) ([]Item, error)
	FindByCategory(categoryID uint, limit, offset int) ([]Item, error)
	Update(item *Item) error
	Delete(id uint) error
	Count() (int64, error)
	CountSold() (int64, error)

	// User favorites. Membership changes and the denormalized counter are
	// applied in one transaction holding a row lock on the item.
	AddFavorite(userID, itemID uint) error
	RemoveFavorite(userID, itemID uint) error
	FindFavoritesOfUser(userID uint) ([]Item, error)
	IsFavorite(userID, itemID uint) (bool, error)
}
