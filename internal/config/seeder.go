package config

import (
	"fmt"

	"resqall/internal/adapters/persistence/models"
	"resqall/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Run migrates the schema and seeds the mock reports into an empty table
func (s *Seeder) Run(reports []domain.Report) error {
	if err := models.AutoMigrate(s.db); err != nil {
		return fmt.Errorf("failed to migrate reports: %w", err)
	}

	seeded, err := s.seedReports(reports)
	if err != nil {
		return err
	}

	s.logger.Info("database seeding completed", zap.Int("reports", seeded))
	return nil
}

// seedReports inserts reports only when the table is empty
func (s *Seeder) seedReports(reports []domain.Report) (int, error) {
	var count int64
	if err := s.db.Model(&models.Report{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	if count > 0 || len(reports) == 0 {
		return 0, nil
	}

	rows := make([]*models.Report, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, models.ReportFromDomain(r))
	}

	if err := s.db.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to seed reports: %w", err)
	}

	return len(rows), nil
}
