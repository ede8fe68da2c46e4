package services

import (
	"encoding/json"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/snackpoint/pos/utils"
)

// BackupService writes a whole-store snapshot to a local JSON file on a
// timer. It only ever reads the collections and writes the file; it never
// mutates the store.
type BackupService struct {
	DB       *gorm.DB
	Path     string
	Interval time.Duration
	StopChan chan struct{}
}

func NewBackupService(db *gorm.DB, path string) *BackupService {
	return &BackupService{
		DB:       db,
		Path:     path,
		Interval: 5 * time.Minute,
		StopChan: make(chan struct{}),
	}
}

// Start snapshots once immediately, then on every tick until Stop.
func (bs *BackupService) Start() {
	go func() {
		bs.snapshot()

		ticker := time.NewTicker(bs.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				bs.snapshot()
			case <-bs.StopChan:
				return
			}
		}
	}()
}

func (bs *BackupService) Stop() {
	close(bs.StopChan)
}

// ReadSnapshot loads a snapshot file written by the service, e.g. to
// restore after a reinstall.
func ReadSnapshot(path string) (*ExportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (bs *BackupService) snapshot() {
	doc, err := BuildExport(bs.DB)
	if err != nil {
		utils.ErrorLogger.Printf("Backup failed: %v", err)
		return
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		utils.ErrorLogger.Printf("Backup failed: %v", err)
		return
	}

	tmp := bs.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		utils.ErrorLogger.Printf("Backup failed: %v", err)
		return
	}
	if err := os.Rename(tmp, bs.Path); err != nil {
		utils.ErrorLogger.Printf("Backup failed: %v", err)
		return
	}

	utils.InfoLogger.Printf("Backup written to %s (%d tables, %d history, %d menu items)",
		bs.Path, len(doc.Tables), len(doc.History), len(doc.MenuItems))
}
