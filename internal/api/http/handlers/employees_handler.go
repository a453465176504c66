package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-docs/internal/api/dto"
	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/service"
	apperrors "github.com/spec-kit/hr-docs/pkg/util/errorutil"
)

// EmployeesHandler serves the HR employee screens and reports.
type EmployeesHandler struct {
	employees     *service.EmployeeService
	reports       *service.ReportService
	defaultWindow int
	now           func() time.Time
}

// NewEmployeesHandler constructs handler. A nil clock means time.Now.
func NewEmployeesHandler(employees *service.EmployeeService, reports *service.ReportService, defaultWindow int, clock func() time.Time) *EmployeesHandler {
	if clock == nil {
		clock = time.Now
	}
	return &EmployeesHandler{employees: employees, reports: reports, defaultWindow: defaultWindow, now: clock}
}

// List GET /rh/colaboradores.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	rows, err := h.employees.FilteredListing(c.UserContext(), service.ListingFilter{
		Search:     c.Query("q"),
		Active:     parseActive(c),
		BirthMonth: parseBirthMonth(c),
		Category:   parseCategory(c),
		Status:     parseStatus(c),
		WindowDays: parseWindowDays(c, h.defaultWindow),
		Today:      h.now(),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeSummaries(rows)})
}

// Get GET /rh/colaboradores/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return apperrors.NewNotFound("employee", nil)
	}
	employee, err := h.employees.Get(c.UserContext(), id)
	if err != nil {
		return notFoundAs(err, "employee", id)
	}
	return c.JSON(fiber.Map{"data": employeeDetail(employee)})
}

// ProfilePDF GET /rh/colaboradores/:id/pdf.
func (h *EmployeesHandler) ProfilePDF(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return apperrors.NewNotFound("employee", nil)
	}
	out, err := h.reports.EmployeeProfile(c.UserContext(), id)
	if err != nil {
		return notFoundAs(err, "employee", id)
	}
	return sendPDF(c, out)
}

// Toxicology GET /rh/toxicos.
func (h *EmployeesHandler) Toxicology(c *fiber.Ctx) error {
	rows, err := h.employees.FilteredListing(c.UserContext(), service.ListingFilter{
		Category:       domain.CategoryToxicology,
		Status:         parseStatus(c),
		WindowDays:     parseWindowDays(c, h.defaultWindow),
		Today:          h.now(),
		OnlyWithExpiry: true,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeSummaries(rows)})
}

// ToxicologyPDF GET /rh/toxicos.pdf.
func (h *EmployeesHandler) ToxicologyPDF(c *fiber.Ctx) error {
	out, err := h.reports.Toxicology(c.UserContext(), parseStatus(c), parseWindowDays(c, h.defaultWindow))
	if err != nil {
		return err
	}
	return sendPDF(c, out)
}

func employeeSummaries(rows []service.EnrichedEmployee) []dto.EmployeeSummary {
	items := make([]dto.EmployeeSummary, 0, len(rows))
	for i := range rows {
		items = append(items, employeeSummary(&rows[i]))
	}
	return items
}
