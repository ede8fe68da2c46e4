package config

import (
	"gorm.io/gorm"

	"github.com/snackpoint/pos/models"
)

// InitialTableCount is the fixed set of dining tables seeded on first
// run, ids 1..10.
const InitialTableCount = 10

// DefaultMenu returns the built-in catalog used to seed an empty store.
func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: 101, Name: "Kachori", Price: 20.00, Category: models.CategorySnacks},
		{ID: 102, Name: "Mirchi Bada", Price: 20.00, Category: models.CategorySnacks},
		{ID: 103, Name: "Dahi Bade", Price: 10.00, Category: models.CategorySnacks},
		{ID: 301, Name: "Chai", Price: 10.00, Category: models.CategoryDrinks},
		{ID: 401, Name: "Lays Chips", Price: 10.00, Category: models.CategoryPackaged},
		{ID: 402, Name: "Balaji Chips", Price: 10.00, Category: models.CategoryPackaged},
	}
}

// SeedIfEmpty populates tables and the menu catalog on first run. Each
// collection is seeded independently: a store with tables but no menu
// still gets the catalog.
func SeedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		tables := make([]models.Table, 0, InitialTableCount)
		for i := 1; i <= InitialTableCount; i++ {
			tables = append(tables, models.Table{
				ID:        uint(i),
				Customers: []models.Customer{},
			})
		}
		if err := db.Create(&tables).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		menu := DefaultMenu()
		if err := db.Create(&menu).Error; err != nil {
			return err
		}
	}

	return nil
}
