package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"folder-ingest/core/ingest"
)

// Service persists terminal ingestion summaries to the catalog database.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Run{}, &QuarantineRecord{}); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return nil
}

// Record stores a terminal summary and its quarantined paths.
func (s *Service) Record(ctx context.Context, summary ingest.Summary, quarantined []string) error {
	run := Run{
		Name:        summary.Name,
		Folder:      summary.Folder,
		Loaded:      summary.Loaded,
		Quarantined: summary.Quarantined,
		FinishedAt:  time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record run for %q: %w", summary.Name, err)
	}

	if len(quarantined) > 0 {
		records := make([]QuarantineRecord, 0, len(quarantined))
		for _, path := range quarantined {
			records = append(records, QuarantineRecord{RunID: run.ID, Path: path})
		}
		if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
			return fmt.Errorf("failed to record quarantined paths for %q: %w", summary.Name, err)
		}
	}

	s.logger.Info("Ingest run recorded",
		zap.String("name", summary.Name),
		zap.Int("loaded", summary.Loaded),
		zap.Int("quarantined", summary.Quarantined))

	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := s.db.WithContext(ctx).
		Order("finished_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent runs: %w", err)
	}
	return runs, nil
}
