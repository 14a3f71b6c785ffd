package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"streetnetwork.app/kinship/common/logger"
)

const (
	InvitationExpirySchedule = "@every 15m"
	SessionPurgeSchedule     = "@hourly"
)

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron        *cron.Cron
	invitations InvitationExpirer
	sessions    SessionPurger
	timeout     time.Duration
}

func NewScheduler(invitations InvitationExpirer, sessions SessionPurger) (*Scheduler, error) {
	log := cronLogger{}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(log),
			cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
		),
		invitations: invitations,
		sessions:    sessions,
		timeout:     2 * time.Minute,
	}

	if _, err := s.cron.AddFunc(InvitationExpirySchedule, func() { s.ExpireInvitations(context.Background()) }); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(SessionPurgeSchedule, func() { s.PurgeSessions(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) ExpireInvitations(ctx context.Context) {
	ctx, cancel := context.WithTimeout(logger.WithLogFields(ctx, logger.LogFields{
		Component: "kinship.worker.scheduler",
	}), s.timeout)
	defer cancel()

	n, err := s.invitations.ExpireOld(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "expiring invitations failed", "error", err)
		return
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired stale invitations", "count", n)
	}
}

func (s *Scheduler) PurgeSessions(ctx context.Context) {
	ctx, cancel := context.WithTimeout(logger.WithLogFields(ctx, logger.LogFields{
		Component: "kinship.worker.scheduler",
	}), s.timeout)
	defer cancel()

	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "purging sessions failed", "error", err)
		return
	}
	if n > 0 {
		slog.InfoContext(ctx, "purged expired sessions", "count", n)
	}
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
