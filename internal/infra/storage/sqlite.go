package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"itch_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Storage archives hourly VWAP snapshots in a local SQLite database. The
// archive is optional and sits beside the contractual CSV output; a replay
// with the archive disabled never touches it.
type Storage struct {
	db *gorm.DB
}

// NewStorage opens (or creates) the archive database at path.
func NewStorage(path string) (*Storage, error) {
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.VWAPRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// SaveSnapshot upserts one hour's report rows.
func (s *Storage) SaveSnapshot(rows []domain.VWAPRecord) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
}

// GetHour retrieves all archived rows for a session hour.
func (s *Storage) GetHour(hour uint64) ([]domain.VWAPRecord, error) {
	var rows []domain.VWAPRecord
	err := s.db.Where("hour = ?", hour).Order("stock").Find(&rows).Error
	return rows, err
}

// GetStock retrieves a symbol's archived rows across all hours.
func (s *Storage) GetStock(stock string) ([]domain.VWAPRecord, error) {
	var rows []domain.VWAPRecord
	err := s.db.Where("stock = ?", stock).Order("hour").Find(&rows).Error
	return rows, err
}
