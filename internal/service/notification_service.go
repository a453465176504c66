package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-docs/internal/config"
	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/events"
	"github.com/spec-kit/hr-docs/internal/repository"
)

// NotificationService delivers the expiry digest to companies that configured
// an alert contact.
type NotificationService struct {
	dispatcher events.Dispatcher
	companies  repository.CompanyRepository
	logger     *zap.Logger
	cfg        config.AlertsConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, companies repository.CompanyRepository, logger *zap.Logger, cfg config.AlertsConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		companies:  companies,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventExpiryDigest, n.handleExpiryDigest)
}

func (n *NotificationService) handleExpiryDigest(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ExpiryDigestPayload)
	if !ok {
		return fmt.Errorf("expiry digest: unexpected payload %T", event.Payload)
	}
	n.logger.Info("ExpiryDigest",
		zap.String("event_id", event.ID),
		zap.Time("date", payload.Date),
		zap.Int("entries", payload.Total()))

	active := true
	companies, err := n.companies.List(ctx, repository.CompanyFilter{Active: &active})
	if err != nil {
		return fmt.Errorf("expiry digest recipients: %w", err)
	}

	for i := range companies {
		company := &companies[i]
		if !company.HasAlertContact() {
			continue
		}
		n.sendEmailNotificationStub(ctx, company, event, payload)
		n.sendWebhookNotificationStub(ctx, company, event, payload)
	}
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, company *domain.Company, event events.Event, payload events.ExpiryDigestPayload) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || company.AlertEmail == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Strings("to", splitRecipients(company.AlertEmail)),
		zap.String("company_id", company.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int("entries", payload.Total()))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, company *domain.Company, event events.Event, payload events.ExpiryDigestPayload) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("company_id", company.ID),
		zap.String("whatsapp", company.AlertWhatsApp),
		zap.String("event_type", string(event.Type)),
		zap.Int("entries", payload.Total()))
}

// splitRecipients accepts comma or semicolon separated addresses.
func splitRecipients(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
