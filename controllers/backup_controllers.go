package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snackpoint/pos/events"
	"github.com/snackpoint/pos/services"
	"github.com/snackpoint/pos/utils"
)

type BackupController struct {
	DB *gorm.DB
}

func NewBackupController(db *gorm.DB) *BackupController {
	return &BackupController{DB: db}
}

// ExportData -> a full snapshot document of all three collections,
// returned raw so the caller can save it as a backup file.
func (bc *BackupController) ExportData(c *gin.Context) {
	doc, err := services.BuildExport(bc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Exported store snapshot (%d tables, %d history, %d menu items)",
		len(doc.Tables), len(doc.History), len(doc.MenuItems))
	c.JSON(http.StatusOK, doc)
}

// ImportData -> replaces the whole store with an export document. The
// document is validated in full before anything is cleared; a malformed
// document aborts with the store untouched. Clear and load then run in
// one transaction.
func (bc *BackupController) ImportData(c *gin.Context) {
	var doc services.ExportDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := doc.Validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !confirmed(c) {
		respondConfirmRequired(c, fmt.Sprintf("Import data from %s? This will replace all current data!",
			doc.ExportDate))
		return
	}

	if err := services.RestoreExport(bc.DB, &doc); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastStoreReplace()
	utils.InfoLogger.Printf("Imported store snapshot from %s (%d tables, %d history, %d menu items)",
		doc.ExportDate, len(doc.Tables), len(doc.History), len(doc.MenuItems))
	utils.RespondJSON(c, http.StatusOK, "Data imported successfully", gin.H{
		"tables":     len(doc.Tables),
		"history":    len(doc.History),
		"menu_items": len(doc.MenuItems),
	})
}
