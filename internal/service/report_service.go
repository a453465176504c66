package service

import (
	"bytes"
	"context"
	"time"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/observability"
	"github.com/spec-kit/hr-docs/internal/report"
)

// Report kinds, used as the metrics label.
const (
	ReportEmployee   = "employee"
	ReportCompany    = "company"
	ReportDocuments  = "documents"
	ReportToxicology = "toxicology"
)

// RenderedReport is a finished PDF and its suggested download name.
type RenderedReport struct {
	Filename string
	Body     []byte
}

// ReportService selects rows and renders them. Selection and rendering share
// one reference day so row status and the footer date always agree.
type ReportService struct {
	employees *EmployeeService
	companies *CompanyService
	documents *DocumentService
	renderer  *report.Renderer
	metrics   *observability.Metrics
	now       func() time.Time
}

// NewReportService wires the service. A nil clock means time.Now.
func NewReportService(
	employees *EmployeeService,
	companies *CompanyService,
	documents *DocumentService,
	renderer *report.Renderer,
	metrics *observability.Metrics,
	clock func() time.Time,
) *ReportService {
	if clock == nil {
		clock = time.Now
	}
	return &ReportService{
		employees: employees,
		companies: companies,
		documents: documents,
		renderer:  renderer,
		metrics:   metrics,
		now:       clock,
	}
}

// EmployeeProfile renders the profile sheet of one employee.
func (s *ReportService) EmployeeProfile(ctx context.Context, id string) (*RenderedReport, error) {
	defer s.metrics.ObserveReport(ReportEmployee, time.Now())

	employee, err := s.employees.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.EmployeeProfile(&buf, employee, s.today()); err != nil {
		return nil, err
	}
	return &RenderedReport{Filename: report.EmployeeFilename(id), Body: buf.Bytes()}, nil
}

// CompanyProfile renders the profile sheet of one company.
func (s *ReportService) CompanyProfile(ctx context.Context, id string) (*RenderedReport, error) {
	defer s.metrics.ObserveReport(ReportCompany, time.Now())

	company, err := s.companies.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.CompanyProfile(&buf, company, s.today()); err != nil {
		return nil, err
	}
	return &RenderedReport{Filename: report.CompanyFilename(id), Body: buf.Bytes()}, nil
}

// Documents renders the document listing for the filter. Its Today is
// replaced by the service clock.
func (s *ReportService) Documents(ctx context.Context, f DocumentFilter) (*RenderedReport, error) {
	defer s.metrics.ObserveReport(ReportDocuments, time.Now())

	f.Today = s.today()
	f.WindowDays = domain.NormalizeWindowDays(f.WindowDays)

	docs, err := s.documents.List(ctx, f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = s.renderer.DocumentListing(&buf, report.ListingOptions{
		Title:       report.DocumentsTitle(f.Status, f.WindowDays),
		GeneratedOn: f.Today,
		WindowDays:  f.WindowDays,
	}, docs)
	if err != nil {
		return nil, err
	}
	return &RenderedReport{Filename: report.DocumentsFilename, Body: buf.Bytes()}, nil
}

// Toxicology renders the toxicology exam listing. Employees without an exam
// date are left out.
func (s *ReportService) Toxicology(ctx context.Context, status domain.ExpiryStatus, windowDays int) (*RenderedReport, error) {
	defer s.metrics.ObserveReport(ReportToxicology, time.Now())

	today := s.today()
	windowDays = domain.NormalizeWindowDays(windowDays)

	rows, err := s.employees.FilteredListing(ctx, ListingFilter{
		Category:       domain.CategoryToxicology,
		Status:         status,
		WindowDays:     windowDays,
		Today:          today,
		OnlyWithExpiry: true,
	})
	if err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, row.Employee)
	}

	var buf bytes.Buffer
	err = s.renderer.ToxicologyListing(&buf, report.ListingOptions{
		Title:       report.ToxicologyTitle(status, windowDays),
		GeneratedOn: today,
		WindowDays:  windowDays,
	}, employees)
	if err != nil {
		return nil, err
	}
	return &RenderedReport{Filename: report.ToxicologyFilename, Body: buf.Bytes()}, nil
}

func (s *ReportService) today() time.Time {
	return domain.DateOf(s.now())
}
