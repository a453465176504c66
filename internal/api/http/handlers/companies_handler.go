package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-docs/internal/api/dto"
	"github.com/spec-kit/hr-docs/internal/repository"
	"github.com/spec-kit/hr-docs/internal/service"
	apperrors "github.com/spec-kit/hr-docs/pkg/util/errorutil"
)

// CompaniesHandler serves company lookups and profile sheets.
type CompaniesHandler struct {
	companies *service.CompanyService
	reports   *service.ReportService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companies *service.CompanyService, reports *service.ReportService) *CompaniesHandler {
	return &CompaniesHandler{companies: companies, reports: reports}
}

// List GET /empresas.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	companies, err := h.companies.List(c.UserContext(), repository.CompanyFilter{
		Search: c.Query("q"),
		Active: parseActive(c),
	})
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, companyResponse(&companies[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /empresas/:id.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return apperrors.NewNotFound("company", nil)
	}
	company, err := h.companies.Get(c.UserContext(), id)
	if err != nil {
		return notFoundAs(err, "company", id)
	}
	return c.JSON(fiber.Map{"data": companyResponse(company)})
}

// ProfilePDF GET /empresas/:id/pdf.
func (h *CompaniesHandler) ProfilePDF(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return apperrors.NewNotFound("company", nil)
	}
	out, err := h.reports.CompanyProfile(c.UserContext(), id)
	if err != nil {
		return notFoundAs(err, "company", id)
	}
	return sendPDF(c, out)
}
