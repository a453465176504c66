package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hr-docs/internal/api/http"
	"github.com/spec-kit/hr-docs/internal/api/http/handlers"
	"github.com/spec-kit/hr-docs/internal/auth"
	"github.com/spec-kit/hr-docs/internal/config"
	"github.com/spec-kit/hr-docs/internal/events"
	"github.com/spec-kit/hr-docs/internal/observability"
	"github.com/spec-kit/hr-docs/internal/persistence"
	"github.com/spec-kit/hr-docs/internal/report"
	"github.com/spec-kit/hr-docs/internal/repository"
	"github.com/spec-kit/hr-docs/internal/service"
	"github.com/spec-kit/hr-docs/internal/worker"
)

// App owns every long-lived resource of the API process.
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	postgres  *persistence.Postgres
	redis     *persistence.Redis
	fiber     *fiber.App
	scheduler *worker.AlertScheduler
	metrics   *observability.Metrics
}

// New connects to the backing stores, prepares the schema and wires the HTTP
// surface. Nothing listens until Run is called.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg.Postgres.DSN == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	pool := pg.PoolHandle()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			pg.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	metrics := observability.NewMetrics()

	guard := persistence.NewSchemaGuard(pool, cfg.Expiry.GuardTables, cfg.Expiry.GuardEnabled, logger, metrics)
	columnReport := guard.EnsureExpiryColumns(ctx)
	columns := repository.ResolveExpiryColumns(columnReport, cfg.Expiry.EmployeeTable, cfg.Expiry.CredentialSource)

	loc := cfg.Alerts.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	employeeRepo := repository.NewEmployeeRepository(pool, cfg.Expiry.EmployeeTable, columns)
	documentRepo := repository.NewDocumentRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	employeeDocRepo := repository.NewEmployeeDocumentRepository(pool)

	dashboardService := service.NewDashboardService(employeeRepo, documentRepo, cfg.Expiry.CardLimit, logger, metrics)
	employeeService := service.NewEmployeeService(employeeRepo, logger)
	companyService := service.NewCompanyService(companyRepo)
	documentService := service.NewDocumentService(documentRepo)
	renderer := report.NewRenderer(report.Options{UploadDir: cfg.Reports.UploadDir, Compress: true}, logger)
	reportService := service.NewReportService(employeeService, companyService, documentService, renderer, metrics, clock)
	authService := service.NewAuthService(cfg.Auth, userRepo, logger)

	redis := persistence.NewRedis(cfg.Redis, logger)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, companyRepo, logger, cfg.Alerts))
	alertService := service.NewAlertService(dashboardService, dispatcher, redis, cfg.Expiry.WindowDays, logger, metrics, clock)

	var scheduler *worker.AlertScheduler
	if cfg.Alerts.Enabled {
		scheduler, err = worker.NewAlertScheduler(cfg.Alerts, alertService, logger)
		if err != nil {
			redis.Close()
			pg.Close()
			return nil, err
		}
	}

	server := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(server, logger, metrics, cfg.App.RequestTimeout())

	window := cfg.Expiry.WindowDays
	httptransport.RegisterRoutes(server, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, window, clock),
		Employees:      handlers.NewEmployeesHandler(employeeService, reportService, window, clock),
		Companies:      handlers.NewCompaniesHandler(companyService, reportService),
		Roles:          handlers.NewRolesHandler(service.NewRoleService(roleRepo)),
		EmployeeDocs:   handlers.NewEmployeeDocumentsHandler(service.NewEmployeeDocumentService(employeeRepo, employeeDocRepo)),
		Documents:      handlers.NewDocumentsHandler(documentService, reportService, window, clock),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
		Metrics:        metrics,
	})

	return &App{
		cfg:       cfg,
		logger:    logger,
		postgres:  pg,
		redis:     redis,
		fiber:     server,
		scheduler: scheduler,
		metrics:   metrics,
	}, nil
}

// Fiber exposes the HTTP application, mainly for tests.
func (a *App) Fiber() *fiber.App {
	return a.fiber
}

// Run starts the alert scheduler and blocks serving HTTP.
func (a *App) Run() error {
	if a.scheduler != nil {
		a.scheduler.Start()
	}
	a.logger.Info("http server listening", zap.String("addr", a.cfg.App.Addr()))
	return a.fiber.Listen(a.cfg.App.Addr())
}

// Shutdown stops the scheduler and the HTTP server, then releases the stores.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.scheduler != nil {
		if err := a.scheduler.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	if err := a.fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http: %w", err))
	}
	a.redis.Close()
	a.postgres.Close()
	return errors.Join(errs...)
}
