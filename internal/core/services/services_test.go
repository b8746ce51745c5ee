package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"resqall/internal/adapters/fixtures"
	"resqall/internal/adapters/persistence/repositories"
	"resqall/internal/core/domain"
	"resqall/internal/core/screens"
	"resqall/internal/core/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixtureDeps(t *testing.T) (repositories.IdentityDirectory, repositories.ReportRepository) {
	t.Helper()

	identities, err := fixtures.Identities()
	require.NoError(t, err)
	reports, err := fixtures.Reports()
	require.NoError(t, err)

	return repositories.NewStaticIdentityDirectory(identities), repositories.NewFixtureReportRepository(reports)
}

func TestAuthService_Validate(t *testing.T) {
	svc := NewAuthService(zap.NewNop())

	tests := []struct {
		name    string
		input   RegisterInput
		wantMsg string
	}{
		{"ok", RegisterInput{Username: "ranger", Password: "pw", ConfirmPassword: "pw"}, ""},
		{"ok empty passwords", RegisterInput{Username: "abc"}, ""},
		{"mismatch", RegisterInput{Username: "ranger", Password: "pw", ConfirmPassword: "px"}, MsgPasswordMismatch},
		{"short username", RegisterInput{Username: "ab", Password: "pw", ConfirmPassword: "pw"}, MsgUsernameTooShort},
		{"mismatch reported first", RegisterInput{Username: "a", Password: "pw", ConfirmPassword: "px"}, MsgPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(&tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantMsg, vErr.Message)
		})
	}
}

func TestAuthService_RegisterRejectedLeavesStoreEmpty(t *testing.T) {
	dir, _ := fixtureDeps(t)
	store := session.NewStore(session.NewMemorySlot(), dir, zap.NewNop())
	svc := NewAuthService(zap.NewNop())

	_, err := svc.Register(context.Background(), store, &RegisterInput{Username: "ab"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, store.IsAuthenticated())
}

func TestScenario_AdminLogin(t *testing.T) {
	dir, reports := fixtureDeps(t)
	store := session.NewStore(session.NewMemorySlot(), dir, zap.NewNop())
	auth := NewAuthService(zap.NewNop())
	dash := NewDashboardService(reports, dir)

	identity, err := auth.Login(context.Background(), store, &LoginInput{Email: "admin@resqall.com", Password: "anything"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, identity.Role)

	d, err := dash.Build(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, screens.VariantAdmin, d.Variant)
	assert.Equal(t, Stats{
		TotalReports:     3,
		CompletedRescues: 1,
		ActiveVolunteers: 1,
		PendingApprovals: 1,
	}, d.Stats)
	assert.Equal(t, []ChartPoint{{"Reports", 3}, {"Rescued", 1}, {"Volunteers", 1}}, d.Chart)
}

func TestScenario_UnknownEmail(t *testing.T) {
	dir, _ := fixtureDeps(t)
	store := session.NewStore(session.NewMemorySlot(), dir, zap.NewNop())
	auth := NewAuthService(zap.NewNop())

	_, err := auth.Login(context.Background(), store, &LoginInput{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, domain.ErrLookupFailure)
	assert.False(t, store.IsAuthenticated())
}

func TestScenario_RegisterVolunteer(t *testing.T) {
	dir, reports := fixtureDeps(t)
	store := session.NewStore(session.NewMemorySlot(), dir, zap.NewNop())
	auth := NewAuthService(zap.NewNop())
	dash := NewDashboardService(reports, dir)

	identity, err := auth.Register(context.Background(), store, &RegisterInput{
		Username:        "new_ranger",
		Email:           "ranger@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		IsVolunteer:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVolunteer, identity.Role)
	assert.Equal(t, domain.VolunteerStatusPending, identity.VolunteerStatus)

	d, err := dash.Build(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, screens.VariantVolunteerPending, d.Variant)
	assert.Nil(t, d.ActiveAssignment)
	assert.Nil(t, d.MyReports)
}

func TestDashboard_ActiveVolunteer(t *testing.T) {
	dir, reports := fixtureDeps(t)
	dash := NewDashboardService(reports, dir)

	sam, err := dir.FindByEmail(context.Background(), "sam@resqall.com")
	require.NoError(t, err)

	d, err := dash.Build(context.Background(), *sam)
	require.NoError(t, err)
	assert.Equal(t, screens.VariantVolunteerActive, d.Variant)
	assert.Equal(t, "Rookie", d.Rank)
	require.NotNil(t, d.ActiveAssignment)
	assert.Equal(t, "1", d.ActiveAssignment.ID)
	assert.Empty(t, d.PendingTasks)
	assert.Equal(t, int64(1), d.Stats.MyCompletedTasks)
	assert.Equal(t, int64(0), d.Stats.MyReports)
}

func TestDashboard_User(t *testing.T) {
	dir, reports := fixtureDeps(t)
	dash := NewDashboardService(reports, dir)

	jane, err := dir.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)

	d, err := dash.Build(context.Background(), *jane)
	require.NoError(t, err)
	assert.Equal(t, screens.VariantUser, d.Variant)
	assert.Len(t, d.MyReports, 3)
	assert.Equal(t, int64(3), d.Stats.MyReports)
}

func TestDashboard_PendingTasks(t *testing.T) {
	dir, _ := fixtureDeps(t)
	assignee := "3"
	reports := repositories.NewFixtureReportRepository([]domain.Report{
		{ID: "a", UserID: "2", Status: domain.StatusSubmitted, AssignedTo: &assignee, CreatedAt: time.Unix(1, 0)},
		{ID: "b", UserID: "2", Status: domain.StatusInProgress, AssignedTo: &assignee, CreatedAt: time.Unix(2, 0)},
		{ID: "c", UserID: "2", Status: domain.StatusInProgress, AssignedTo: &assignee, CreatedAt: time.Unix(3, 0)},
		{ID: "d", UserID: "2", Status: domain.StatusSubmitted, AssignedTo: &assignee, CreatedAt: time.Unix(4, 0)},
	})
	dash := NewDashboardService(reports, dir)

	d, err := dash.Build(context.Background(), domain.Identity{ID: "3", Role: domain.RoleVolunteer, VolunteerStatus: domain.VolunteerStatusApproved})
	require.NoError(t, err)
	require.NotNil(t, d.ActiveAssignment)
	assert.Equal(t, "b", d.ActiveAssignment.ID)
	require.Len(t, d.PendingTasks, 2)
	assert.Equal(t, "a", d.PendingTasks[0].ID)
	assert.Equal(t, "d", d.PendingTasks[1].ID)
}

func TestDashboard_PendingTasksCapped(t *testing.T) {
	dir, _ := fixtureDeps(t)
	assignee := "3"
	var rows []domain.Report
	for i := 0; i < 4; i++ {
		rows = append(rows, domain.Report{
			ID:         fmt.Sprintf("p%d", i),
			UserID:     "2",
			Status:     domain.StatusSubmitted,
			AssignedTo: &assignee,
			CreatedAt:  time.Unix(int64(i+1), 0),
		})
	}
	dash := NewDashboardService(repositories.NewFixtureReportRepository(rows), dir)

	d, err := dash.Build(context.Background(), domain.Identity{ID: "3", Role: domain.RoleVolunteer, VolunteerStatus: domain.VolunteerStatusApproved})
	require.NoError(t, err)
	require.Len(t, d.PendingTasks, PendingTaskLimit)
	assert.Equal(t, "p0", d.PendingTasks[0].ID)
	assert.Equal(t, "p1", d.PendingTasks[1].ID)
}

func TestDashboard_RejectedVolunteer(t *testing.T) {
	dir, reports := fixtureDeps(t)
	dash := NewDashboardService(reports, dir)

	d, err := dash.Build(context.Background(), domain.Identity{
		ID:              "3",
		Username:        "safari_sam",
		Role:            domain.RoleVolunteer,
		VolunteerStatus: domain.VolunteerStatusRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, screens.VariantVolunteerRejected, d.Variant)
	assert.Empty(t, d.Rank)
	assert.Nil(t, d.ActiveAssignment)
	assert.Nil(t, d.PendingTasks)
	assert.Nil(t, d.MyReports)
}

func TestDashboard_TasksWalksEveryPage(t *testing.T) {
	dir, _ := fixtureDeps(t)
	var rows []domain.Report
	for i := 0; i < 250; i++ {
		status := domain.StatusSubmitted
		if i%5 == 0 {
			status = domain.StatusCompleted
		}
		rows = append(rows, domain.Report{
			ID:        fmt.Sprintf("r%d", i),
			UserID:    "2",
			Status:    status,
			CreatedAt: time.Unix(int64(i+1), 0),
		})
	}
	dash := NewDashboardService(repositories.NewFixtureReportRepository(rows), dir)

	open, err := dash.Tasks(context.Background(), domain.Identity{ID: "1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, open, 200)
}

func TestDashboard_TasksAndRoster(t *testing.T) {
	dir, reports := fixtureDeps(t)
	dash := NewDashboardService(reports, dir)
	ctx := context.Background()

	tasks, err := dash.Tasks(ctx, domain.Identity{ID: "3", Role: domain.RoleVolunteer})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	open, err := dash.Tasks(ctx, domain.Identity{ID: "1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, open, 2)
	for _, r := range open {
		assert.NotEqual(t, domain.StatusCompleted, r.Status)
	}

	volunteers, err := dash.Volunteers(ctx)
	require.NoError(t, err)
	require.Len(t, volunteers, 2)
	assert.Equal(t, "safari_sam", volunteers[0].Username)
	assert.Equal(t, "wildlife_will", volunteers[1].Username)
}

func TestVolunteerRank(t *testing.T) {
	assert.Equal(t, "Rookie", VolunteerRank(0))
	assert.Equal(t, "Rookie", VolunteerRank(2))
	assert.Equal(t, "Senior Ranger", VolunteerRank(3))
	assert.Equal(t, "Senior Ranger", VolunteerRank(5))
	assert.Equal(t, "Elite Guardian", VolunteerRank(6))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 80))
	assert.Equal(t, "abc...", Excerpt("abcdef", 3))
	assert.Equal(t, "ñañ...", Excerpt("ñañañ", 3))
}

type fakeSweeper struct {
	cutoff  time.Time
	removed []string
	err     error
}

func (f *fakeSweeper) Sweep(cutoff time.Time) ([]string, error) {
	f.cutoff = cutoff
	return f.removed, f.err
}

func TestCronService_SweepEvictsStores(t *testing.T) {
	dir, _ := fixtureDeps(t)
	manager := session.NewManager(session.NewMemorySlots(), dir, zap.NewNop())
	_, err := manager.Open("stale").Login(context.Background(), "sam@resqall.com")
	require.NoError(t, err)
	_, err = manager.Open("fresh").Login(context.Background(), "admin@resqall.com")
	require.NoError(t, err)
	manager.Open("visitor")

	sweeper := &fakeSweeper{removed: []string{"stale"}}
	svc := NewCronService(sweeper, manager, 24*time.Hour, zap.NewNop())
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	n, err := svc.SweepStaleSessions()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, now.Add(-24*time.Hour), sweeper.cutoff)
	assert.Equal(t, 1, manager.Len())
}

func TestCronService_StartRejectsBadSpec(t *testing.T) {
	dir, _ := fixtureDeps(t)
	manager := session.NewManager(session.NewMemorySlots(), dir, zap.NewNop())
	svc := NewCronService(&fakeSweeper{}, manager, time.Hour, zap.NewNop())

	assert.Error(t, svc.Start("not a schedule"))

	require.NoError(t, svc.Start("@hourly"))
	svc.Stop()
}
