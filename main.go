package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/snackpoint/pos/config"
	"github.com/snackpoint/pos/models"
	"github.com/snackpoint/pos/router"
	"github.com/snackpoint/pos/services"
	"github.com/snackpoint/pos/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := config.SeedIfEmpty(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed store: %v", err)
	}

	// Periodic whole-store snapshot to a local file
	backupPath := os.Getenv("POS_BACKUP_PATH")
	if backupPath == "" {
		backupPath = "snackpoint-backup.json"
	}
	backup := services.NewBackupService(db, backupPath)
	backup.Start()
	defer backup.Stop()

	r := router.SetupRouter(db)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Table{},
		&models.MenuItem{},
		&models.HistoryRecord{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
