package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/repository"
)

// ListingFilter drives the HR employee listing. Category and Status are
// optional; Status is ignored without a Category.
type ListingFilter struct {
	Search         string
	Active         *bool
	BirthMonth     int
	Category       domain.Category
	Status         domain.ExpiryStatus
	WindowDays     int
	Today          time.Time
	OnlyWithExpiry bool
}

// EnrichedEmployee is an employee row with the resolved expiry of the
// requested category attached.
type EnrichedEmployee struct {
	domain.Employee
	Category      domain.Category
	ExpiresOn     *time.Time
	DaysRemaining *int
	Status        domain.ExpiryStatus
}

// EmployeeService serves employee listings and profiles.
type EmployeeService struct {
	employees repository.EmployeeRepository
	logger    *zap.Logger
}

// NewEmployeeService wires the service.
func NewEmployeeService(employees repository.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{employees: employees, logger: logger}
}

// Get returns a single employee or domain.ErrNotFound.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// FilteredListing applies the base filters in the database, then classifies
// each row against the requested category. When that category has no column
// the base list is returned as is.
func (s *EmployeeService) FilteredListing(ctx context.Context, f ListingFilter) ([]EnrichedEmployee, error) {
	employees, err := s.employees.List(ctx, repository.EmployeeFilter{
		Search:     f.Search,
		Active:     f.Active,
		BirthMonth: f.BirthMonth,
	})
	if err != nil {
		return nil, err
	}

	result := make([]EnrichedEmployee, 0, len(employees))

	if f.Category == "" {
		for _, e := range employees {
			result = append(result, EnrichedEmployee{Employee: e})
		}
		return result, nil
	}

	if _, ok := s.employees.Columns().For(f.Category); !ok {
		s.logger.Warn("expiry category unavailable; category filter skipped",
			zap.String("category", string(f.Category)))
		if f.OnlyWithExpiry {
			// no row can carry a value for a missing column
			return result, nil
		}
		for _, e := range employees {
			result = append(result, EnrichedEmployee{Employee: e})
		}
		return result, nil
	}

	today := domain.DateOf(f.Today)
	if f.Today.IsZero() {
		today = domain.DateOf(time.Now())
	}
	windowDays := domain.NormalizeWindowDays(f.WindowDays)

	for _, e := range employees {
		expiresOn := e.ExpiryFor(f.Category)
		if expiresOn == nil && f.OnlyWithExpiry {
			continue
		}
		status := domain.Classify(expiresOn, today, windowDays)
		if f.Status != "" && status != f.Status {
			continue
		}

		row := EnrichedEmployee{Employee: e, Category: f.Category, ExpiresOn: expiresOn, Status: status}
		if expiresOn != nil {
			days := domain.DaysUntil(*expiresOn, today)
			row.DaysRemaining = &days
		}
		result = append(result, row)
	}
	return result, nil
}
