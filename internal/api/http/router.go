package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/hr-docs/internal/api/http/handlers"
	"github.com/spec-kit/hr-docs/internal/auth"
	"github.com/spec-kit/hr-docs/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Dashboard      *handlers.DashboardHandler
	Employees      *handlers.EmployeesHandler
	Companies      *handlers.CompaniesHandler
	Roles          *handlers.RolesHandler
	EmployeeDocs   *handlers.EmployeeDocumentsHandler
	Documents      *handlers.DocumentsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	app.Post("/auth/login", cfg.Auth.Login)

	guard := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRole()}

	app.Get("/dashboard", append(guard, cfg.Dashboard.Summary)...)

	rh := app.Group("/rh", guard...)
	rh.Get("/colaboradores", cfg.Employees.List)
	rh.Get("/colaboradores/:id", cfg.Employees.Get)
	rh.Get("/colaboradores/:id/pdf", cfg.Employees.ProfilePDF)
	rh.Get("/colaboradores/:id/docs", cfg.EmployeeDocs.List)
	rh.Get("/funcoes", cfg.Roles.List)
	rh.Get("/toxicos", cfg.Employees.Toxicology)
	rh.Get("/toxicos.pdf", cfg.Employees.ToxicologyPDF)

	companies := app.Group("/empresas", guard...)
	companies.Get("/", cfg.Companies.List)
	companies.Get("/:id", cfg.Companies.Get)
	companies.Get("/:id/pdf", cfg.Companies.ProfilePDF)

	documents := app.Group("/documentos", guard...)
	documents.Get("/", cfg.Documents.List)
	documents.Get("/count", cfg.Documents.Count)
	documents.Get("/pdf", cfg.Documents.ListPDF)
}
