package config

import (
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the embedded SQLite store. The whole restaurant lives in
// one local file; POS_DB_PATH overrides the default location.
func InitDB() (*gorm.DB, error) {
	dbPath := os.Getenv("POS_DB_PATH")
	if dbPath == "" {
		dbPath = "snackpoint.db"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
