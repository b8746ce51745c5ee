package repositories

import (
	"context"
	"sort"

	"resqall/internal/core/domain"
)

// fixtureReportRepository implements ReportRepository over an in-memory slice
type fixtureReportRepository struct {
	reports []domain.Report
}

// NewFixtureReportRepository creates a report repository over static data.
// Reports are held oldest first, matching the ordering of the gorm repository.
func NewFixtureReportRepository(reports []domain.Report) ReportRepository {
	copied := make([]domain.Report, len(reports))
	copy(copied, reports)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].CreatedAt.Before(copied[j].CreatedAt)
	})
	return &fixtureReportRepository{reports: copied}
}

// FindByOwner gets reports filed by a user
func (r *fixtureReportRepository) FindByOwner(_ context.Context, userID string) ([]domain.Report, error) {
	return r.filter(func(report domain.Report) bool {
		return report.UserID == userID
	}), nil
}

// FindByAssignee gets reports assigned to a volunteer
func (r *fixtureReportRepository) FindByAssignee(_ context.Context, assigneeID string) ([]domain.Report, error) {
	return r.filter(func(report domain.Report) bool {
		return report.IsAssignedTo(assigneeID)
	}), nil
}

// List lists reports newest first with pagination
func (r *fixtureReportRepository) List(_ context.Context, offset, limit int) ([]domain.Report, int64, error) {
	sorted := make([]domain.Report, len(r.reports))
	copy(sorted, r.reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	total := int64(len(sorted))
	if offset >= len(sorted) {
		return []domain.Report{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], total, nil
}

// CountByStatus counts reports in a status
func (r *fixtureReportRepository) CountByStatus(_ context.Context, status domain.ReportStatus) (int64, error) {
	return int64(len(r.filter(func(report domain.Report) bool {
		return report.Status == status
	}))), nil
}

// Count counts all reports
func (r *fixtureReportRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.reports)), nil
}

func (r *fixtureReportRepository) filter(keep func(domain.Report) bool) []domain.Report {
	out := []domain.Report{}
	for _, report := range r.reports {
		if keep(report) {
			out = append(out, report)
		}
	}
	return out
}
