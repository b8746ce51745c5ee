package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"resqall/internal/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCorruptSession is logged when a persisted slot cannot be decoded
var ErrCorruptSession = errors.New("corrupt persisted session")

// Store holds at most one identity and mirrors it into a slot
type Store struct {
	mu        sync.Mutex
	slot      Slot
	directory Directory
	logger    *zap.Logger
	now       func() time.Time
	current   *domain.Identity

	// replacement is set once the manager drops this store. Callers still
	// holding it are forwarded to the store now cached for the client.
	replacement func() *Store
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for registration ids
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store and rehydrates it from the slot.
// A slot that cannot be read or decoded is cleared and the store starts empty.
func NewStore(slot Slot, directory Directory, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		slot:      slot,
		directory: directory,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	data, err := s.slot.Load()
	if err != nil {
		s.logger.Warn("Failed to read persisted session", zap.Error(err))
		s.discard()
		return
	}
	if data == nil {
		return
	}

	identity, err := decode(data)
	if err != nil {
		s.logger.Warn("Error parsing stored identity", zap.Error(err))
		s.discard()
		return
	}

	s.current = identity
	s.logger.Debug("Session rehydrated", zap.String("identityID", identity.ID), zap.String("role", string(identity.Role)))
}

func (s *Store) discard() {
	if err := s.slot.Clear(); err != nil {
		s.logger.Warn("Failed to clear persisted session", zap.Error(err))
	}
}

// Current returns a copy of the held identity
func (s *Store) Current() (domain.Identity, bool) {
	s.mu.Lock()
	if next := s.replacement; next != nil {
		s.mu.Unlock()
		return next().Current()
	}
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.Identity{}, false
	}
	return s.current.Clone(), true
}

// IsAuthenticated reports whether an identity is held
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Login looks the email up in the directory and makes the match current.
// On a miss it returns domain.ErrLookupFailure and leaves the store unchanged.
func (s *Store) Login(ctx context.Context, email string) (domain.Identity, error) {
	found, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Identity{}, domain.ErrLookupFailure
		}
		return domain.Identity{}, fmt.Errorf("lookup identity: %w", err)
	}

	identity := found.Clone()

	s.mu.Lock()
	if next := s.replacement; next != nil {
		s.mu.Unlock()
		return next().Login(ctx, email)
	}
	defer s.mu.Unlock()

	if err := s.set(&identity); err != nil {
		return domain.Identity{}, err
	}

	s.logger.Info("Identity logged in", zap.String("identityID", identity.ID), zap.String("role", string(identity.Role)))
	return identity.Clone(), nil
}

// Register synthesizes a new identity and makes it current.
// No uniqueness check is made against the directory.
func (s *Store) Register(username, email string, isVolunteer bool) (domain.Identity, error) {
	role := domain.RoleUser
	status := domain.VolunteerStatusNone
	if isVolunteer {
		role = domain.RoleVolunteer
		status = domain.VolunteerStatusPending
	}

	s.mu.Lock()
	if next := s.replacement; next != nil {
		s.mu.Unlock()
		return next().Register(username, email, isVolunteer)
	}
	defer s.mu.Unlock()

	identity := domain.Identity{
		ID:              s.newID(),
		Username:        username,
		Email:           email,
		Role:            role,
		VolunteerStatus: status,
		Badges:          []string{},
		Bio:             "",
		NotificationPreferences: domain.NotificationPreferences{
			Email:   true,
			Browser: true,
		},
	}

	if err := s.set(&identity); err != nil {
		return domain.Identity{}, err
	}

	s.logger.Info("Identity registered", zap.String("identityID", identity.ID), zap.String("role", string(identity.Role)))
	return identity.Clone(), nil
}

// Logout clears the identity and removes the persisted slot
func (s *Store) Logout() error {
	s.mu.Lock()
	if next := s.replacement; next != nil {
		s.mu.Unlock()
		return next().Logout()
	}
	defer s.mu.Unlock()

	s.current = nil
	if err := s.slot.Clear(); err != nil {
		return fmt.Errorf("clear session slot: %w", err)
	}

	s.logger.Info("Identity logged out")
	return nil
}

// retire hands the store over to next. With onlyAnonymous set a store that
// holds an identity is kept and false is returned.
func (s *Store) retire(next func() *Store, onlyAnonymous bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if onlyAnonymous && s.current != nil {
		return false
	}
	s.replacement = next
	return true
}

// set must be called with mu held. The in-memory cell is updated even when
// persisting fails so the caller still sees the identity it just chose.
func (s *Store) set(identity *domain.Identity) error {
	s.current = identity

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.slot.Save(data); err != nil {
		return fmt.Errorf("persist session slot: %w", err)
	}
	return nil
}

// newID derives an id from the current time with a random suffix
func (s *Store) newID() string {
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), uuid.NewString()[:8])
}

func decode(data []byte) (*domain.Identity, error) {
	var identity domain.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if identity.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrCorruptSession)
	}
	return &identity, nil
}
