package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-docs/internal/config"
)

const digestTimeout = 5 * time.Minute

// DigestSender publishes the daily expiry digest.
type DigestSender interface {
	SendDailyDigest(ctx context.Context) (string, error)
}

// AlertScheduler runs the digest on a cron schedule in the configured timezone.
// A run still in progress when the next one is due is skipped.
type AlertScheduler struct {
	cron   *cron.Cron
	sender DigestSender
	logger *zap.Logger
	entry  cron.EntryID
}

// NewAlertScheduler parses the schedule and registers the digest job.
func NewAlertScheduler(cfg config.AlertsConfig, sender DigestSender, logger *zap.Logger) (*AlertScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cronLogger := zapCronLogger{logger.Sugar()}

	s := &AlertScheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location()),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		sender: sender,
		logger: logger,
	}

	entry, err := s.cron.AddFunc(cfg.Schedule, s.run)
	if err != nil {
		return nil, fmt.Errorf("alert schedule %q: %w", cfg.Schedule, err)
	}
	s.entry = entry
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *AlertScheduler) Start() {
	s.cron.Start()
	s.logger.Info("alert scheduler started", zap.Time("next_run", s.cron.Entry(s.entry).Next))
}

// Stop halts the scheduler and waits for a running job, or for ctx.
func (s *AlertScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AlertScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	outcome, err := s.sender.SendDailyDigest(ctx)
	if err != nil {
		s.logger.Error("expiry digest failed", zap.String("outcome", outcome), zap.Error(err))
		return
	}
	s.logger.Debug("expiry digest run finished", zap.String("outcome", outcome))
}

// zapCronLogger adapts zap to cron.Logger.
type zapCronLogger struct {
	s *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
