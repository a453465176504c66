package service

import (
	"context"
	"time"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/repository"
)

// DocumentFilter narrows the document listing.
type DocumentFilter struct {
	Status     domain.ExpiryStatus
	WindowDays int
	Today      time.Time
	CompanyID  string
	Search     string
}

// DocumentService serves the corporate document listing and counts.
type DocumentService struct {
	documents repository.DocumentRepository
}

// NewDocumentService wires the service.
func NewDocumentService(documents repository.DocumentRepository) *DocumentService {
	return &DocumentService{documents: documents}
}

// List returns every matching document, undated ones last.
func (s *DocumentService) List(ctx context.Context, f DocumentFilter) ([]domain.Document, error) {
	return s.documents.ListByExpiry(ctx, repository.DocumentQuery{
		Status:     f.Status,
		Today:      referenceDay(f.Today),
		WindowDays: domain.NormalizeWindowDays(f.WindowDays),
		CompanyID:  f.CompanyID,
		Search:     f.Search,
	})
}

// Count returns how many documents are in the given status.
func (s *DocumentService) Count(ctx context.Context, status domain.ExpiryStatus, windowDays int, today time.Time) (int, error) {
	return s.documents.Count(ctx, repository.CountQuery{
		Status:     status,
		Today:      referenceDay(today),
		WindowDays: domain.NormalizeWindowDays(windowDays),
	})
}

func referenceDay(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return domain.DateOf(t)
}
