package models

import "time"

// Menu categories seeded with the default catalog. The category field is
// an open string, new categories can appear at any time.
const (
	CategorySnacks     = "Snacks"
	CategoryDrinks     = "Drinks"
	CategoryPackaged   = "Packaged"
	CategoryMainCourse = "Main Course"
	CategoryDesserts   = "Desserts"
)

type MenuItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category  string    `gorm:"type:varchar(100);not null;index" json:"category"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
