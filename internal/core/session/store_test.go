package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"resqall/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapDirectory map[string]domain.Identity

func (d mapDirectory) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	identity, ok := d[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &identity, nil
}

type failingSlot struct {
	MemorySlot
	loadErr error
	saveErr error
}

func (f *failingSlot) Load() ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.MemorySlot.Load()
}

func (f *failingSlot) Save(data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemorySlot.Save(data)
}

func testDirectory() mapDirectory {
	return mapDirectory{
		"admin@resqall.com": {
			ID:                      "1",
			Username:                "admin",
			Email:                   "admin@resqall.com",
			Role:                    domain.RoleAdmin,
			VolunteerStatus:         domain.VolunteerStatusNone,
			Badges:                  []string{"Founder"},
			Bio:                     "System Administrator",
			NotificationPreferences: domain.NotificationPreferences{Email: true, Browser: true},
		},
		"sam@resqall.com": {
			ID:                      "3",
			Username:                "safari_sam",
			Email:                   "sam@resqall.com",
			Role:                    domain.RoleVolunteer,
			VolunteerStatus:         domain.VolunteerStatusApproved,
			Badges:                  []string{"Ranger Scout", "First Responder"},
			Bio:                     "Emergency responder",
			NotificationPreferences: domain.NotificationPreferences{Email: true, Browser: true},
		},
	}
}

func TestLogin_KnownEmailSetsExactRecord(t *testing.T) {
	dir := testDirectory()
	slot := NewMemorySlot()
	store := NewStore(slot, dir, zap.NewNop())

	for email, want := range dir {
		got, err := store.Login(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		current, ok := store.Current()
		require.True(t, ok)
		assert.Equal(t, want, current)

		data, err := slot.Load()
		require.NoError(t, err)
		var persisted domain.Identity
		require.NoError(t, json.Unmarshal(data, &persisted))
		assert.Equal(t, want, persisted)
	}
}

func TestLogin_UnknownEmailLeavesStateUnchanged(t *testing.T) {
	store := NewStore(NewMemorySlot(), testDirectory(), zap.NewNop())

	_, err := store.Login(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrLookupFailure)
	assert.False(t, store.IsAuthenticated())

	before, err := store.Login(context.Background(), "admin@resqall.com")
	require.NoError(t, err)

	for _, email := range []string{"nobody@example.com", "ADMIN@resqall.com", " admin@resqall.com", ""} {
		_, err := store.Login(context.Background(), email)
		assert.ErrorIs(t, err, domain.ErrLookupFailure, email)

		current, ok := store.Current()
		require.True(t, ok)
		assert.Equal(t, before, current)
	}
}

func TestRegister_RoleStatusPairing(t *testing.T) {
	tests := []struct {
		name        string
		isVolunteer bool
		wantRole    domain.Role
		wantStatus  domain.VolunteerStatus
	}{
		{"volunteer", true, domain.RoleVolunteer, domain.VolunteerStatusPending},
		{"user", false, domain.RoleUser, domain.VolunteerStatusNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
			store := NewStore(NewMemorySlot(), testDirectory(), zap.NewNop(), WithClock(func() time.Time { return fixed }))

			identity, err := store.Register("new_ranger", "ranger@example.com", tt.isVolunteer)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRole, identity.Role)
			assert.Equal(t, tt.wantStatus, identity.VolunteerStatus)
			assert.Equal(t, "new_ranger", identity.Username)
			assert.Equal(t, "ranger@example.com", identity.Email)
			assert.Empty(t, identity.Badges)
			assert.Empty(t, identity.Bio)
			assert.True(t, identity.NotificationPreferences.Email)
			assert.True(t, identity.NotificationPreferences.Browser)
			assert.Regexp(t, `^1710072000000-[0-9a-f]{8}$`, identity.ID)

			current, ok := store.Current()
			require.True(t, ok)
			assert.Equal(t, identity, current)
		})
	}
}

func TestRegister_NoUniquenessCheck(t *testing.T) {
	store := NewStore(NewMemorySlot(), testDirectory(), zap.NewNop())

	identity, err := store.Register("imposter", "admin@resqall.com", false)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, identity.Role)
}

func TestLogout_ThenRehydrateYieldsNoIdentity(t *testing.T) {
	slot := NewMemorySlot()
	store := NewStore(slot, testDirectory(), zap.NewNop())

	_, err := store.Login(context.Background(), "sam@resqall.com")
	require.NoError(t, err)
	require.NoError(t, store.Logout())
	assert.False(t, store.IsAuthenticated())

	data, err := slot.Load()
	require.NoError(t, err)
	assert.Nil(t, data)

	reopened := NewStore(slot, testDirectory(), zap.NewNop())
	_, ok := reopened.Current()
	assert.False(t, ok)
}

func TestRehydrate_RoundTrip(t *testing.T) {
	slot := NewMemorySlot()
	store := NewStore(slot, testDirectory(), zap.NewNop())

	registered, err := store.Register("will", "will@example.com", true)
	require.NoError(t, err)

	reopened := NewStore(slot, testDirectory(), zap.NewNop())
	got, ok := reopened.Current()
	require.True(t, ok)
	assert.Equal(t, registered, got)

	logged, err := store.Login(context.Background(), "sam@resqall.com")
	require.NoError(t, err)

	reopened = NewStore(slot, testDirectory(), zap.NewNop())
	got, ok = reopened.Current()
	require.True(t, ok)
	assert.Equal(t, logged, got)
}

func TestRehydrate_CorruptSlotIsDiscarded(t *testing.T) {
	for _, raw := range []string{"{not json", "null", `{"username":"ghost"}`, `"just a string"`} {
		slot := NewMemorySlot()
		require.NoError(t, slot.Save([]byte(raw)))

		store := NewStore(slot, testDirectory(), zap.NewNop())
		assert.False(t, store.IsAuthenticated(), raw)

		data, err := slot.Load()
		require.NoError(t, err)
		assert.Nil(t, data, raw)
	}
}

func TestRehydrate_UnreadableSlotStartsEmpty(t *testing.T) {
	slot := &failingSlot{loadErr: errors.New("disk on fire")}

	store := NewStore(slot, testDirectory(), zap.NewNop())
	assert.False(t, store.IsAuthenticated())
}

func TestLogin_PersistFailureStillSetsIdentity(t *testing.T) {
	slot := &failingSlot{saveErr: errors.New("read-only")}
	store := NewStore(slot, testDirectory(), zap.NewNop())

	_, err := store.Login(context.Background(), "admin@resqall.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrLookupFailure)
	assert.True(t, store.IsAuthenticated())
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	store := NewStore(NewMemorySlot(), testDirectory(), zap.NewNop())
	_, err := store.Login(context.Background(), "sam@resqall.com")
	require.NoError(t, err)

	first, _ := store.Current()
	first.Badges[0] = "tampered"

	second, _ := store.Current()
	assert.Equal(t, "Ranger Scout", second.Badges[0])
}
