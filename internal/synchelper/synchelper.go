// Package synchelper is the thin boundary to the file-sync helper spec.md
// §1/§6.5 documents as an external collaborator: a small SQLite-backed
// mirror of which files are present on the device. The core's only
// contract with it is reconciliation — confirming every built track has a
// corresponding on-device record.
package synchelper

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rockbox-tools/tagdb/internal/synchelper/migrations"
)

// Record mirrors one row of the sync_records table (spec §6.5).
type Record struct {
	ID         uint    `gorm:"primaryKey"`
	Path       string  `gorm:"uniqueIndex;not null"`
	Size       int64   `gorm:"not null"`
	ModTime    float64 `gorm:"column:mod_time;not null"`
	SourcePath string  `gorm:"column:source_path"`
}

// TableName pins the table name to the one spec.md §6.5 names verbatim.
func (Record) TableName() string { return "sync_records" }

// Helper wraps the sync_records SQLite database living at
// <device_root>/.sync/sync_helper.db.
type Helper struct {
	db *gorm.DB
}

// Open connects to (and, if necessary, creates and migrates) the sync
// helper database under deviceRoot.
func Open(deviceRoot string) (*Helper, error) {
	dir := filepath.Join(deviceRoot, ".sync")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("synchelper: create %s: %w", dir, err)
	}
	dsn := filepath.Join(dir, "sync_helper.db")

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("synchelper: open %s: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("synchelper: underlying handle: %w", err)
	}
	if err := migrations.Run(sqlDB); err != nil {
		return nil, fmt.Errorf("synchelper: migrate: %w", err)
	}

	return &Helper{db: db}, nil
}

// Close releases the underlying connection.
func (h *Helper) Close() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Put upserts a sync record by path.
func (h *Helper) Put(r Record) error {
	return h.db.Where("path = ?", r.Path).Assign(r).FirstOrCreate(&Record{}).Error
}

// Paths returns every path currently recorded as present on device.
func (h *Helper) Paths() (map[string]bool, error) {
	var records []Record
	if err := h.db.Find(&records).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(records))
	for _, r := range records {
		out[r.Path] = true
	}
	return out, nil
}

// Reconcile compares dbTracks (paths present in a freshly built tagcache
// database) against what the sync helper believes is on device. missing is
// every dbTracks path with no on-device record; extra is every on-device
// record whose path is not in dbTracks. This is the entirety of the core's
// contract with the file-sync helper (spec §1, §6.5).
func (h *Helper) Reconcile(dbTracks []string) (missing, extra []string, err error) {
	onDevice, err := h.Paths()
	if err != nil {
		return nil, nil, err
	}

	inDB := make(map[string]bool, len(dbTracks))
	for _, p := range dbTracks {
		inDB[p] = true
		if !onDevice[p] {
			missing = append(missing, p)
		}
	}
	for p := range onDevice {
		if !inDB[p] {
			extra = append(extra, p)
		}
	}
	return missing, extra, nil
}
