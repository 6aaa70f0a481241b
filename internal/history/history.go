package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type HistoryManager struct {
	db *gorm.DB
}

type HistoryEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Line string
}

// NewHistoryManager opens the history database at dbFilePath, creating the
// file and its schema when they do not exist yet.
func NewHistoryManager(dbFilePath string) (*HistoryManager, error) {
	if err := os.MkdirAll(filepath.Dir(dbFilePath), 0755); err != nil {
		return nil, fmt.Errorf("error creating history directory: %w", err)
	}

	dbFileExists := true
	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, fmt.Errorf("error checking history db: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening history db: %w", err)
	}

	if !dbFileExists || !db.Migrator().HasTable(&HistoryEntry{}) {
		if err := db.AutoMigrate(&HistoryEntry{}); err != nil {
			return nil, fmt.Errorf("error auto-migrating history schema: %w", err)
		}
	}

	return &HistoryManager{
		db: db,
	}, nil
}

// Recent returns up to limit input lines, most recent first.
func (historyManager *HistoryManager) Recent(limit int) ([]string, error) {
	var entries []HistoryEntry
	result := historyManager.db.Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return lo.Map(entries, func(entry HistoryEntry, _ int) string {
		return entry.Line
	}), nil
}

// Append stores lines in the order given, oldest first.
func (historyManager *HistoryManager) Append(lines ...string) error {
	if len(lines) == 0 {
		return nil
	}

	now := time.Now()
	entries := lo.Map(lines, func(line string, _ int) HistoryEntry {
		return HistoryEntry{CreatedAt: now, Line: line}
	})

	return historyManager.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(entries, 100).Error
	})
}

// Trim keeps the newest keep entries and deletes the rest.
func (historyManager *HistoryManager) Trim(keep int) error {
	if keep <= 0 {
		return historyManager.ResetHistory()
	}

	var cutoff HistoryEntry
	result := historyManager.db.Order("id desc").Offset(keep - 1).Limit(1).Find(&cutoff)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}

	return historyManager.db.Where("id < ?", cutoff.ID).Delete(&HistoryEntry{}).Error
}

func (historyManager *HistoryManager) ResetHistory() error {
	result := historyManager.db.Exec("DELETE FROM history_entries")
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// Close releases the underlying database connection.
func (historyManager *HistoryManager) Close() error {
	sqlDB, err := historyManager.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
