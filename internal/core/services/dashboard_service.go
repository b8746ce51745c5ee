package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"resqall/internal/adapters/persistence/repositories"
	"resqall/internal/core/domain"
	"resqall/internal/core/screens"
)

const (
	// ExcerptLength is the description length shown on assignment cards
	ExcerptLength = 80
	// PendingTaskLimit caps the pending tasks listed on a volunteer dashboard
	PendingTaskLimit = 2
	// taskPageSize is the page size used to walk every report for the task board
	taskPageSize = 100
)

// DashboardService composes dashboard view models
type DashboardService struct {
	reports   repositories.ReportRepository
	directory repositories.IdentityDirectory
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(reports repositories.ReportRepository, directory repositories.IdentityDirectory) *DashboardService {
	return &DashboardService{
		reports:   reports,
		directory: directory,
	}
}

// Stats represents dashboard counters
type Stats struct {
	TotalReports     int64 `json:"total_reports"`
	CompletedRescues int64 `json:"completed_rescues"`
	ActiveVolunteers int64 `json:"active_volunteers"`
	PendingApprovals int64 `json:"pending_approvals"`
	MyReports        int64 `json:"my_reports"`
	MyCompletedTasks int64 `json:"my_completed_tasks"`
}

// ChartPoint is one bar of the admin overview chart
type ChartPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Dashboard represents the data behind one dashboard variant
type Dashboard struct {
	Variant          screens.Variant `json:"variant"`
	Identity         domain.Identity `json:"identity"`
	Stats            Stats           `json:"stats"`
	Chart            []ChartPoint    `json:"chart,omitempty"`
	Rank             string          `json:"rank,omitempty"`
	ActiveAssignment *domain.Report  `json:"active_assignment,omitempty"`
	PendingTasks     []domain.Report `json:"pending_tasks,omitempty"`
	MyReports        []domain.Report `json:"my_reports,omitempty"`
}

// Build returns the dashboard for an identity
func (s *DashboardService) Build(ctx context.Context, identity domain.Identity) (*Dashboard, error) {
	owned, err := s.reports.FindByOwner(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("find own reports: %w", err)
	}
	assigned, err := s.reports.FindByAssignee(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("find assigned reports: %w", err)
	}

	stats, err := s.stats(ctx, owned, assigned)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		Variant:  screens.VariantFor(identity),
		Identity: identity,
		Stats:    *stats,
	}

	switch dash.Variant {
	case screens.VariantAdmin:
		dash.Chart = []ChartPoint{
			{Name: "Reports", Value: stats.TotalReports},
			{Name: "Rescued", Value: stats.CompletedRescues},
			{Name: "Volunteers", Value: stats.ActiveVolunteers},
		}
	case screens.VariantVolunteerActive:
		dash.Rank = VolunteerRank(len(identity.Badges))
		dash.PendingTasks = []domain.Report{}
		for i := range assigned {
			switch assigned[i].Status {
			case domain.StatusInProgress:
				if dash.ActiveAssignment == nil {
					task := assigned[i]
					dash.ActiveAssignment = &task
				}
			case domain.StatusSubmitted:
				if len(dash.PendingTasks) < PendingTaskLimit {
					dash.PendingTasks = append(dash.PendingTasks, assigned[i])
				}
			}
		}
	case screens.VariantUser:
		dash.MyReports = owned
	case screens.VariantVolunteerPending, screens.VariantVolunteerRejected:
	}

	return dash, nil
}

func (s *DashboardService) stats(ctx context.Context, owned, assigned []domain.Report) (*Stats, error) {
	total, err := s.reports.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}
	completed, err := s.reports.CountByStatus(ctx, domain.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("count completed reports: %w", err)
	}
	active, err := s.directory.CountVolunteers(ctx, domain.VolunteerStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("count active volunteers: %w", err)
	}
	pending, err := s.directory.CountVolunteers(ctx, domain.VolunteerStatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending volunteers: %w", err)
	}

	var myCompleted int64
	for _, r := range assigned {
		if r.Status == domain.StatusCompleted {
			myCompleted++
		}
	}

	return &Stats{
		TotalReports:     total,
		CompletedRescues: completed,
		ActiveVolunteers: active,
		PendingApprovals: pending,
		MyReports:        int64(len(owned)),
		MyCompletedTasks: myCompleted,
	}, nil
}

// Tasks lists the deployment board for an identity: assigned reports for a
// volunteer, every open report for anyone else
func (s *DashboardService) Tasks(ctx context.Context, identity domain.Identity) ([]domain.Report, error) {
	if identity.Role == domain.RoleVolunteer {
		return s.reports.FindByAssignee(ctx, identity.ID)
	}

	open := []domain.Report{}
	for offset := 0; ; offset += taskPageSize {
		page, total, err := s.reports.List(ctx, offset, taskPageSize)
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		for _, r := range page {
			if r.Status != domain.StatusCompleted {
				open = append(open, r)
			}
		}
		if len(page) == 0 || int64(offset+len(page)) >= total {
			return open, nil
		}
	}
}

// Volunteers lists volunteer identities for the personnel screen
func (s *DashboardService) Volunteers(ctx context.Context) ([]domain.Identity, error) {
	all, err := s.directory.List(ctx)
	if err != nil {
		return nil, err
	}
	volunteers := []domain.Identity{}
	for _, identity := range all {
		if identity.IsVolunteer() {
			volunteers = append(volunteers, identity)
		}
	}
	return volunteers, nil
}

// Reports lists reports newest first for the master log
func (s *DashboardService) Reports(ctx context.Context, offset, limit int) ([]domain.Report, int64, error) {
	return s.reports.List(ctx, offset, limit)
}

// VolunteerRank names a volunteer's rank by badge count
func VolunteerRank(badges int) string {
	switch {
	case badges > 5:
		return "Elite Guardian"
	case badges > 2:
		return "Senior Ranger"
	default:
		return "Rookie"
	}
}

// Excerpt shortens s to n runes followed by an ellipsis
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
