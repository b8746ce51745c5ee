package repositories

import (
	"context"

	"resqall/internal/adapters/persistence/models"
	"resqall/internal/core/domain"

	"gorm.io/gorm"
)

// reportRepository implements ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// FindByOwner gets reports filed by a user
func (r *reportRepository) FindByOwner(ctx context.Context, userID string) ([]domain.Report, error) {
	var rows []*models.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomain(rows), nil
}

// FindByAssignee gets reports assigned to a volunteer
func (r *reportRepository) FindByAssignee(ctx context.Context, assigneeID string) ([]domain.Report, error) {
	var rows []*models.Report
	err := r.db.WithContext(ctx).
		Where("assigned_to = ?", assigneeID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomain(rows), nil
}

// List lists reports newest first with pagination
func (r *reportRepository) List(ctx context.Context, offset, limit int) ([]domain.Report, int64, error) {
	var rows []*models.Report
	var total int64

	// Count total
	if err := r.db.WithContext(ctx).Model(&models.Report{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get reports with pagination
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return toDomain(rows), total, nil
}

// CountByStatus counts reports in a status
func (r *reportRepository) CountByStatus(ctx context.Context, status domain.ReportStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

// Count counts all reports
func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).Count(&count).Error
	return count, err
}

func toDomain(rows []*models.Report) []domain.Report {
	out := make([]domain.Report, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out
}
