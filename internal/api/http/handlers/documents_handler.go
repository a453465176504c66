package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-docs/internal/api/dto"
	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/service"
)

// DocumentsHandler serves the corporate document screens and report.
type DocumentsHandler struct {
	documents     *service.DocumentService
	reports       *service.ReportService
	defaultWindow int
	now           func() time.Time
}

// NewDocumentsHandler constructs handler. A nil clock means time.Now.
func NewDocumentsHandler(documents *service.DocumentService, reports *service.ReportService, defaultWindow int, clock func() time.Time) *DocumentsHandler {
	if clock == nil {
		clock = time.Now
	}
	return &DocumentsHandler{documents: documents, reports: reports, defaultWindow: defaultWindow, now: clock}
}

// List GET /documentos.
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	filter := h.filter(c)
	docs, err := h.documents.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		items = append(items, documentResponse(&docs[i], filter.Today, filter.WindowDays))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Count GET /documentos/count.
func (h *DocumentsHandler) Count(c *fiber.Ctx) error {
	status := parseStatus(c)
	windowDays := parseWindowDays(c, h.defaultWindow)
	count, err := h.documents.Count(c.UserContext(), status, windowDays, h.now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DocumentCountResponse{
		Status:     string(status),
		WindowDays: windowDays,
		Count:      count,
	}})
}

// ListPDF GET /documentos/pdf.
func (h *DocumentsHandler) ListPDF(c *fiber.Ctx) error {
	out, err := h.reports.Documents(c.UserContext(), h.filter(c))
	if err != nil {
		return err
	}
	return sendPDF(c, out)
}

// filter reads the listing filters. A company id that is not a UUID is ignored.
func (h *DocumentsHandler) filter(c *fiber.Ctx) service.DocumentFilter {
	f := service.DocumentFilter{
		Status:     parseStatus(c),
		WindowDays: parseWindowDays(c, h.defaultWindow),
		Today:      domain.DateOf(h.now()),
		Search:     c.Query("q"),
	}
	if company := firstQuery(c, "empresa", "company_id"); isUUID(company) {
		f.CompanyID = company
	}
	return f
}
