package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/events"
	"github.com/spec-kit/hr-docs/internal/observability"
)

const alertLockTTL = 24 * time.Hour

// Alert run outcomes, used as the metrics label.
const (
	AlertSent    = "sent"
	AlertSkipped = "skipped"
	AlertEmpty   = "empty"
	AlertFailed  = "failed"
)

// Locker grants a key to a single caller within ttl.
type Locker interface {
	AcquireOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// AlertService publishes the daily expiry digest.
type AlertService struct {
	dashboard  *DashboardService
	dispatcher events.Dispatcher
	locker     Locker
	windowDays int
	logger     *zap.Logger
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewAlertService wires the service. A nil clock means time.Now.
func NewAlertService(
	dashboard *DashboardService,
	dispatcher events.Dispatcher,
	locker Locker,
	windowDays int,
	logger *zap.Logger,
	metrics *observability.Metrics,
	clock func() time.Time,
) *AlertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &AlertService{
		dashboard:  dashboard,
		dispatcher: dispatcher,
		locker:     locker,
		windowDays: domain.NormalizeWindowDays(windowDays),
		logger:     logger,
		metrics:    metrics,
		now:        clock,
	}
}

// SendDailyDigest computes today's summary and publishes it once per day
// across instances. It reports the outcome it recorded.
func (s *AlertService) SendDailyDigest(ctx context.Context) (string, error) {
	today := domain.DateOf(s.now())

	summary, err := s.dashboard.Summary(ctx, today, s.windowDays)
	if err != nil {
		s.metrics.IncAlertRun(AlertFailed)
		return AlertFailed, err
	}

	payload := digestPayload(summary)
	if payload.Total() == 0 {
		s.metrics.IncAlertRun(AlertEmpty)
		s.logger.Info("expiry digest empty", zap.Time("date", today))
		return AlertEmpty, nil
	}

	key := "alerts:daily:" + today.Format("2006-01-02")
	if s.locker != nil {
		acquired, err := s.locker.AcquireOnce(ctx, key, alertLockTTL)
		switch {
		case err != nil:
			s.logger.Warn("alert lock unavailable; sending anyway", zap.String("key", key), zap.Error(err))
		case !acquired:
			s.metrics.IncAlertRun(AlertSkipped)
			s.logger.Info("expiry digest already sent", zap.String("key", key))
			return AlertSkipped, nil
		}
	}

	if err := s.dispatcher.Publish(ctx, events.NewEvent(events.EventExpiryDigest, payload)); err != nil {
		s.metrics.IncAlertRun(AlertFailed)
		return AlertFailed, err
	}

	s.metrics.IncAlertRun(AlertSent)
	s.logger.Info("expiry digest sent", zap.Time("date", today), zap.Int("entries", payload.Total()))
	return AlertSent, nil
}

func digestPayload(summary *Summary) events.ExpiryDigestPayload {
	payload := events.ExpiryDigestPayload{
		Date:       summary.Today,
		WindowDays: summary.WindowDays,
	}
	for _, card := range summary.Cards() {
		if len(card.Expired) == 0 && len(card.Expiring) == 0 {
			continue
		}
		payload.Sections = append(payload.Sections, events.DigestSection{
			Category: string(card.Category),
			Title:    card.Title,
			Expired:  card.Expired,
			Expiring: card.Expiring,
		})
	}
	return payload
}
