package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/observability"
	"github.com/spec-kit/hr-docs/internal/repository"
)

// CategoryDocuments is the pseudo-category of the corporate documents card.
const CategoryDocuments domain.Category = "documentos"

// CategorySummary is one dashboard card. Available is false when the backing
// column does not exist; both lists are then empty.
type CategorySummary struct {
	Category  domain.Category
	Title     string
	Available bool
	Expired   []domain.ExpiryEntry
	Expiring  []domain.ExpiryEntry
}

// Summary aggregates the dashboard for one reference day.
type Summary struct {
	Today             time.Time
	WindowDays        int
	Health            CategorySummary
	Credential        CategorySummary
	Toxicology        CategorySummary
	Documents         CategorySummary
	TotalEmployees    int
	ActiveEmployees   int
	InactiveEmployees int
	DocumentsExpired  int
	DocumentsExpiring int
}

// Cards returns the available cards in display order.
func (s *Summary) Cards() []CategorySummary {
	cards := make([]CategorySummary, 0, 4)
	for _, c := range []CategorySummary{s.Health, s.Credential, s.Toxicology, s.Documents} {
		if c.Available {
			cards = append(cards, c)
		}
	}
	return cards
}

func (s *Summary) card(category domain.Category) *CategorySummary {
	switch category {
	case domain.CategoryHealth:
		return &s.Health
	case domain.CategoryCredential:
		return &s.Credential
	case domain.CategoryToxicology:
		return &s.Toxicology
	default:
		return &s.Documents
	}
}

// DashboardService builds the expiry dashboard.
type DashboardService struct {
	employees repository.EmployeeRepository
	documents repository.DocumentRepository
	cardLimit int
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// NewDashboardService wires the service.
func NewDashboardService(
	employees repository.EmployeeRepository,
	documents repository.DocumentRepository,
	cardLimit int,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *DashboardService {
	if cardLimit <= 0 {
		cardLimit = repository.DefaultCardLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		employees: employees,
		documents: documents,
		cardLimit: cardLimit,
		logger:    logger,
		metrics:   metrics,
	}
}

// Summary computes every card and count for today. Independent queries run
// concurrently; a category whose column is unavailable is left out.
func (s *DashboardService) Summary(ctx context.Context, today time.Time, windowDays int) (*Summary, error) {
	defer s.metrics.ObserveDashboard(time.Now())

	today = domain.DateOf(today)
	windowDays = domain.NormalizeWindowDays(windowDays)

	summary := &Summary{Today: today, WindowDays: windowDays}
	for _, category := range []domain.Category{domain.CategoryHealth, domain.CategoryCredential, domain.CategoryToxicology, CategoryDocuments} {
		card := summary.card(category)
		card.Category = category
		card.Title = categoryTitle(category)
		card.Expired = []domain.ExpiryEntry{}
		card.Expiring = []domain.ExpiryEntry{}
	}

	var total, active int

	g, gctx := errgroup.WithContext(ctx)

	for _, category := range domain.Categories {
		card := summary.card(category)
		g.Go(func() error {
			return s.employeeCard(gctx, card, today, windowDays)
		})
	}

	g.Go(func() error {
		return s.documentCard(gctx, &summary.Documents, today, windowDays)
	})

	g.Go(func() error {
		var err error
		total, err = s.employees.Count(gctx, nil)
		if err != nil {
			return err
		}
		isActive := true
		active, err = s.employees.Count(gctx, &isActive)
		return err
	})

	g.Go(func() error {
		var err error
		summary.DocumentsExpired, err = s.documents.Count(gctx, repository.CountQuery{
			Status: domain.ExpiryExpired, Today: today, WindowDays: windowDays,
		})
		if err != nil {
			return err
		}
		summary.DocumentsExpiring, err = s.documents.Count(gctx, repository.CountQuery{
			Status: domain.ExpiryExpiringSoon, Today: today, WindowDays: windowDays,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.TotalEmployees = total
	summary.ActiveEmployees = active
	summary.InactiveEmployees = total - active
	return summary, nil
}

func (s *DashboardService) employeeCard(ctx context.Context, card *CategorySummary, today time.Time, windowDays int) error {
	fetch := func(status domain.ExpiryStatus) ([]domain.ExpiryEntry, error) {
		employees, err := s.employees.ListByExpiry(ctx, repository.ExpiryQuery{
			Category:   card.Category,
			Status:     status,
			Today:      today,
			WindowDays: windowDays,
			Limit:      s.cardLimit,
		})
		if err != nil {
			return nil, err
		}
		entries := make([]domain.ExpiryEntry, 0, len(employees))
		for i := range employees {
			if expiresOn := employees[i].ExpiryFor(card.Category); expiresOn != nil {
				entries = append(entries, domain.ExpiryEntry{Name: employees[i].Name, ExpiresOn: *expiresOn})
			}
		}
		return entries, nil
	}

	expired, err := fetch(domain.ExpiryExpired)
	if err == nil {
		card.Expired = expired
		card.Expiring, err = fetch(domain.ExpiryExpiringSoon)
	}

	switch {
	case err == nil:
		card.Available = true
		return nil
	case errors.Is(err, domain.ErrSchemaUnavailable):
		card.Available = false
		card.Expired = []domain.ExpiryEntry{}
		card.Expiring = []domain.ExpiryEntry{}
		s.metrics.IncSchemaUnavailable(string(card.Category))
		s.logger.Warn("expiry category unavailable; card omitted",
			zap.String("category", string(card.Category)), zap.Error(err))
		return nil
	default:
		return err
	}
}

func (s *DashboardService) documentCard(ctx context.Context, card *CategorySummary, today time.Time, windowDays int) error {
	fetch := func(status domain.ExpiryStatus) ([]domain.ExpiryEntry, error) {
		docs, err := s.documents.ListByExpiry(ctx, repository.DocumentQuery{
			Status:     status,
			Today:      today,
			WindowDays: windowDays,
			Limit:      s.cardLimit,
		})
		if err != nil {
			return nil, err
		}
		entries := make([]domain.ExpiryEntry, 0, len(docs))
		for i := range docs {
			if docs[i].ExpiresOn != nil {
				entries = append(entries, domain.ExpiryEntry{Name: docs[i].DisplayName(), ExpiresOn: *docs[i].ExpiresOn})
			}
		}
		return entries, nil
	}

	var err error
	if card.Expired, err = fetch(domain.ExpiryExpired); err != nil {
		return err
	}
	if card.Expiring, err = fetch(domain.ExpiryExpiringSoon); err != nil {
		return err
	}
	card.Available = true
	return nil
}

func categoryTitle(category domain.Category) string {
	if category == CategoryDocuments {
		return "Documentos"
	}
	return category.Title()
}
