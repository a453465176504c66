package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-docs/internal/service"
	apperrors "github.com/spec-kit/hr-docs/pkg/util/errorutil"
)

// EmployeeDocumentsHandler lists the files kept on an employee's record.
type EmployeeDocumentsHandler struct {
	documents *service.EmployeeDocumentService
}

// NewEmployeeDocumentsHandler constructs handler.
func NewEmployeeDocumentsHandler(documents *service.EmployeeDocumentService) *EmployeeDocumentsHandler {
	return &EmployeeDocumentsHandler{documents: documents}
}

// List GET /rh/colaboradores/:id/docs?q=.
func (h *EmployeeDocumentsHandler) List(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return apperrors.NewNotFound("employee", nil)
	}
	employee, docs, err := h.documents.List(c.UserContext(), id, c.Query("q"))
	if err != nil {
		return notFoundAs(err, "employee", id)
	}
	return c.JSON(fiber.Map{"data": employeeDocumentsResponse(employee, docs)})
}
