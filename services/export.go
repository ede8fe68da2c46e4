package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/snackpoint/pos/models"
)

// ExportVersion tags snapshot documents so future formats can be told
// apart on import.
const ExportVersion = "1.0"

// ExportDocument is a full snapshot of the store: enough to rebuild all
// three collections from scratch.
type ExportDocument struct {
	Version    string                 `json:"version"`
	ExportDate string                 `json:"exportDate"`
	Tables     []models.Table         `json:"tables"`
	History    []models.HistoryRecord `json:"history"`
	MenuItems  []models.MenuItem      `json:"menuItems"`
}

// BuildExport reads all three collections into a snapshot document.
func BuildExport(db *gorm.DB) (*ExportDocument, error) {
	doc := &ExportDocument{
		Version:    ExportVersion,
		ExportDate: time.Now().Format(time.RFC3339),
		Tables:     []models.Table{},
		History:    []models.HistoryRecord{},
		MenuItems:  []models.MenuItem{},
	}

	if err := db.Find(&doc.Tables).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&doc.History).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&doc.MenuItems).Error; err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate checks the whole document before any collection is touched.
// Import must be all-or-nothing: a malformed document aborts here, with
// the store unchanged. Empty arrays are fine, the collections are
// independent.
func (doc *ExportDocument) Validate() error {
	if doc.Version == "" {
		return errors.New("missing version tag")
	}

	for i, table := range doc.Tables {
		if table.ID == 0 {
			return fmt.Errorf("tables[%d]: missing id", i)
		}
		for j, cu := range table.Customers {
			for k, line := range cu.Orders {
				if line.Qty < 1 {
					return fmt.Errorf("tables[%d].customers[%d].orders[%d]: quantity must be at least 1", i, j, k)
				}
			}
		}
	}

	for i, item := range doc.MenuItems {
		if item.Name == "" {
			return fmt.Errorf("menuItems[%d]: name is required", i)
		}
		if item.Price < 0 {
			return fmt.Errorf("menuItems[%d]: price must not be negative", i)
		}
	}

	for i, record := range doc.History {
		if record.Date == "" {
			return fmt.Errorf("history[%d]: missing date", i)
		}
		for j, line := range record.Items {
			if line.Qty < 1 {
				return fmt.Errorf("history[%d].items[%d]: quantity must be at least 1", i, j)
			}
		}
	}

	return nil
}

// RestoreExport replaces the entire store with the document's contents.
// Clear and load run inside one transaction, so a failed load rolls back
// instead of leaving an emptied store behind. Callers must not interleave
// other mutations with a restore.
func RestoreExport(db *gorm.DB, doc *ExportDocument) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Table{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.HistoryRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}

		if len(doc.Tables) > 0 {
			if err := tx.Create(&doc.Tables).Error; err != nil {
				return err
			}
		}
		if len(doc.History) > 0 {
			if err := tx.Create(&doc.History).Error; err != nil {
				return err
			}
		}
		if len(doc.MenuItems) > 0 {
			if err := tx.Create(&doc.MenuItems).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
