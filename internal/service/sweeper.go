package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionAbandoner closes quiz sessions nobody finished.
type SessionAbandoner interface {
	AbandonStale(ctx context.Context, ttl time.Duration) ([]int64, error)
}

// SessionReleaser drops process-local state of a closed session.
type SessionReleaser interface {
	Delete(sessionID int64)
}

// SessionSweeper periodically abandons stale quiz sessions.
type SessionSweeper struct {
	sessions SessionAbandoner
	releaser SessionReleaser
	ttl      time.Duration
	spec     string
	logger   *zap.Logger
}

// NewSessionSweeper creates a sweeper that runs on the given cron spec.
// releaser may be nil.
func NewSessionSweeper(
	sessions SessionAbandoner,
	releaser SessionReleaser,
	ttl time.Duration,
	spec string,
	logger *zap.Logger,
) *SessionSweeper {
	if spec == "" {
		spec = "0 * * * *"
	}
	return &SessionSweeper{
		sessions: sessions,
		releaser: releaser,
		ttl:      ttl,
		spec:     spec,
		logger:   logger,
	}
}

// Start runs the scheduler until ctx is cancelled.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(s.spec, func() { s.sweep(ctx) }); err != nil {
		return err
	}

	c.Start()
	s.logger.Info("session sweeper started", zap.String("spec", s.spec), zap.Duration("ttl", s.ttl))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	ids, err := s.sessions.AbandonStale(ctx, s.ttl)
	if err != nil {
		s.logger.Error("failed to abandon stale sessions", zap.Error(err))
		return
	}
	if len(ids) == 0 {
		return
	}

	if s.releaser != nil {
		for _, id := range ids {
			s.releaser.Delete(id)
		}
	}
	s.logger.Info("stale sessions abandoned", zap.Int("count", len(ids)))
}
