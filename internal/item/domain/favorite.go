package domain

import "time"

// Favorite represents a user's favorite item. The membership rows are the
// source of truth for Item.FavoriteCount.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_item"`
	ItemID    uint      `json:"item_id" gorm:"not null;index;uniqueIndex:idx_user_item"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}
