package repositories

import (
	"context"

	"resqall/internal/core/domain"
)

// IdentityDirectory defines the read-only identity list used by login
type IdentityDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	List(ctx context.Context) ([]domain.Identity, error)
	CountVolunteers(ctx context.Context, status domain.VolunteerStatus) (int64, error)
}

// ReportRepository defines report repository interface
// Read-only: reports are never created or mutated by the application
type ReportRepository interface {
	FindByOwner(ctx context.Context, userID string) ([]domain.Report, error)
	FindByAssignee(ctx context.Context, assigneeID string) ([]domain.Report, error)
	List(ctx context.Context, offset, limit int) ([]domain.Report, int64, error)
	CountByStatus(ctx context.Context, status domain.ReportStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
}
