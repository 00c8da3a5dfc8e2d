package domain

import "time"

// Category represents an item category
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(category *Category) error
	FindByID(id uint) (*Category, error)
	FindByName(name string) (*Category, error)
	FindAll() ([]Category, error)
}
