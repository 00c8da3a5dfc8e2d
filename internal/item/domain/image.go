package domain

import "time"

// Image represents a stored item picture. Rows only come into existence
// through an upload on an existing item and are cascade-deleted with it.
// The storage path stays internal, mirroring the upload directory layout.
type Image struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ItemID    uint      `json:"item_id" gorm:"not null;index"`
	Path      string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Image) TableName() string {
	return "images"
}

// ImageRepository defines the contract for image data access
type ImageRepository interface {
	Create(image *Image) error
	FindByID(id uint) (*Image, error)
	FindByItem(itemID uint) ([]Image, error)
	Update(image *Image) error
	Delete(id uint) error
}
