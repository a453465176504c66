package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-docs/internal/service"
)

// DashboardHandler serves the expiry dashboard.
type DashboardHandler struct {
	dashboard     *service.DashboardService
	defaultWindow int
	now           func() time.Time
}

// NewDashboardHandler constructs handler. A nil clock means time.Now.
func NewDashboardHandler(dashboard *service.DashboardService, defaultWindow int, clock func() time.Time) *DashboardHandler {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardHandler{dashboard: dashboard, defaultWindow: defaultWindow, now: clock}
}

// Summary GET /dashboard.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.UserContext(), h.now(), parseWindowDays(c, h.defaultWindow))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboardResponse(summary)})
}
