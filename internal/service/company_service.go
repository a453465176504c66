package service

import (
	"context"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/repository"
)

// CompanyService exposes company lookups.
type CompanyService struct {
	companies repository.CompanyRepository
}

// NewCompanyService wires the service.
func NewCompanyService(companies repository.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

// Get returns a company or domain.ErrNotFound.
func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// List returns companies matching the filter.
func (s *CompanyService) List(ctx context.Context, filter repository.CompanyFilter) ([]domain.Company, error) {
	return s.companies.List(ctx, filter)
}
