package models

import "time"

type Restaurant struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Address   string    `json:"address" gorm:"size:200;not null"`
	OwnerID   int64     `json:"owner_id" gorm:"not null;index"`
	Phone     string    `json:"phone" gorm:"size:13;not null"`
	LogoURL   string    `json:"logo_url" gorm:"size:500"`
	TaxID     string    `json:"tax_id" gorm:"size:20;not null;uniqueIndex"`
	Dishes    []Dish    `json:"dishes,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Dish is a menu entry. Only Price and Description change after creation.
type Dish struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Price        int       `json:"price" gorm:"not null"`
	Description  string    `json:"description" gorm:"size:500;not null"`
	ImageURL     string    `json:"image_url" gorm:"size:255;not null"`
	Category     string    `json:"category" gorm:"size:50;not null"`
	RestaurantID int64     `json:"restaurant_id" gorm:"not null;index"`
	Active       *bool     `json:"active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsActive reports the stored flag, treating an unset flag as active.
func (d *Dish) IsActive() bool {
	return d.Active == nil || *d.Active
}
