package services

import (
	"fmt"
	"time"

	"resqall/internal/core/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SlotSweeper removes persisted slots last written before a cutoff
type SlotSweeper interface {
	Sweep(cutoff time.Time) ([]string, error)
}

// CronService runs session housekeeping on a schedule
type CronService struct {
	cron    *cron.Cron
	slots   SlotSweeper
	manager *session.Manager
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewCronService creates the housekeeping scheduler.
// Slots untouched for longer than ttl are removed on every run.
func NewCronService(slots SlotSweeper, manager *session.Manager, ttl time.Duration, logger *zap.Logger) *CronService {
	return &CronService{
		cron:    cron.New(),
		slots:   slots,
		manager: manager,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Start schedules the sweep with a cron spec (e.g. "@hourly") and starts the scheduler
func (s *CronService) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.SweepStaleSessions(); err != nil {
			s.logger.Error("Session sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}

	s.cron.Start()
	s.logger.Info("Session sweeper started", zap.String("schedule", spec), zap.Duration("ttl", s.ttl))
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Session sweeper stopped")
}

// SweepStaleSessions removes stale slots and evicts their cached stores.
// Anonymous stores are dropped as well; they hold nothing the slot lacks.
func (s *CronService) SweepStaleSessions() (int, error) {
	removed, err := s.slots.Sweep(s.now().Add(-s.ttl))
	if err != nil {
		return 0, err
	}

	s.manager.Evict(removed...)
	anonymous := s.manager.EvictAnonymous()
	if len(removed) > 0 || anonymous > 0 {
		s.logger.Info("Swept stale sessions",
			zap.Int("slots", len(removed)),
			zap.Int("anonymous", anonymous),
		)
	}
	return len(removed), nil
}
