package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/hr-docs/internal/api/http/handlers"
	"github.com/spec-kit/hr-docs/internal/auth"
	"github.com/spec-kit/hr-docs/internal/config"
	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/observability"
	"github.com/spec-kit/hr-docs/internal/report"
	"github.com/spec-kit/hr-docs/internal/repository"
	"github.com/spec-kit/hr-docs/internal/service"
)

const (
	employeeID = "0b8f5a52-2f7d-4a0e-9a4b-5f2c3c1d7e01"
	companyID  = "6a1d9b7e-8c3f-4e2a-b5d4-1f0e9c8b7a62"
	missingID  = "f3e2d1c0-b9a8-4765-8432-10fedcba9876"
)

var today = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

type stubEmployees struct {
	rows    []domain.Employee
	lastLim atomic.Int64
}

func (s *stubEmployees) List(context.Context, repository.EmployeeFilter) ([]domain.Employee, error) {
	return s.rows, nil
}

func (s *stubEmployees) ListByExpiry(_ context.Context, q repository.ExpiryQuery) ([]domain.Employee, error) {
	s.lastLim.Store(int64(q.Limit))
	out := []domain.Employee{}
	for _, e := range s.rows {
		if domain.Classify(e.ExpiryFor(q.Category), q.Today, q.WindowDays) == q.Status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubEmployees) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubEmployees) Count(_ context.Context, active *bool) (int, error) {
	if active != nil {
		return 1, nil
	}
	return len(s.rows), nil
}

func (s *stubEmployees) Columns() repository.ExpiryColumns {
	return repository.DefaultExpiryColumns()
}

type stubDocuments struct {
	rows []domain.Document
}

func (s *stubDocuments) ListByExpiry(_ context.Context, q repository.DocumentQuery) ([]domain.Document, error) {
	out := []domain.Document{}
	for _, d := range s.rows {
		if q.Status == "" || d.Status(q.Today, q.WindowDays) == q.Status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubDocuments) Count(ctx context.Context, q repository.CountQuery) (int, error) {
	docs, err := s.ListByExpiry(ctx, repository.DocumentQuery{Status: q.Status, Today: q.Today, WindowDays: q.WindowDays})
	return len(docs), err
}

type stubCompanies struct {
	rows []domain.Company
}

func (s *stubCompanies) GetByID(_ context.Context, id string) (*domain.Company, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCompanies) List(context.Context, repository.CompanyFilter) ([]domain.Company, error) {
	return s.rows, nil
}

type stubUsers struct {
	user domain.User
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if id == s.user.ID {
		u := s.user
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if strings.EqualFold(username, s.user.Username) {
		u := s.user
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

type stubRoles struct{}

func (stubRoles) List(context.Context) ([]domain.Role, error) {
	return []domain.Role{{ID: "r1", Name: "Auxiliar"}, {ID: "r2", Name: "Motorista"}}, nil
}

type stubEmployeeDocuments struct {
	lastSearch atomic.Value
}

func (s *stubEmployeeDocuments) ListByEmployee(_ context.Context, employeeID, search string) ([]domain.EmployeeDocument, error) {
	s.lastSearch.Store(search)
	return []domain.EmployeeDocument{
		{ID: "ed1", EmployeeID: employeeID, Kind: "CNH", FilePath: `uploads\func_docs\cnh.pdf`},
	}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type RouterSuite struct {
	suite.Suite

	app       *fiber.App
	metrics   *observability.Metrics
	employees *stubEmployees
	empDocs   *stubEmployeeDocuments
	token     string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	s.Require().NoError(err)
	users := &stubUsers{user: domain.User{ID: "u1", Username: "admin", PasswordHash: hash, Role: domain.UserRoleAdmin, Active: true}}

	s.employees = &stubEmployees{rows: []domain.Employee{
		{ID: employeeID, Name: "Ana Souza", Active: true, ASOExpiresOn: datePtr(today.AddDate(0, 0, -5)), ToxicologyExpiresOn: datePtr(today.AddDate(0, 0, 10))},
		{ID: "other", Name: "Bruno Lima", ToxicologyExpiresOn: datePtr(today.AddDate(0, 0, 45))},
	}}
	documents := &stubDocuments{rows: []domain.Document{
		{ID: "d1", CompanyID: companyID, CompanyName: "Alfa", TypeName: "Alvará", ExpiresOn: datePtr(today.AddDate(0, 0, -1))},
		{ID: "d2", CompanyID: companyID, CompanyName: "Alfa", TypeName: "Certidão", ExpiresOn: datePtr(today.AddDate(0, 0, 20))},
	}}
	s.empDocs = &stubEmployeeDocuments{}
	companies := &stubCompanies{rows: []domain.Company{{ID: companyID, LegalName: "Alfa LTDA", Active: true}}}

	clock := func() time.Time { return today.Add(10 * time.Hour) }
	logger := zap.NewNop()
	s.metrics = observability.NewMetrics()

	employeeSvc := service.NewEmployeeService(s.employees, logger)
	companySvc := service.NewCompanyService(companies)
	documentSvc := service.NewDocumentService(documents)
	reportSvc := service.NewReportService(employeeSvc, companySvc, documentSvc,
		report.NewRenderer(report.Options{}, logger), s.metrics, clock)
	authSvc := service.NewAuthService(config.AuthConfig{JWTSecret: "test"}, users, logger)

	s.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger, s.metrics)})
	RegisterMiddlewares(s.app, logger, s.metrics, time.Second)
	RegisterRoutes(s.app, RouteConfig{
		Health:         handlers.NewHealthHandler("hr-docs", "test", stubPinger{}, stubPinger{err: errors.New("redis down")}),
		Auth:           handlers.NewAuthHandler(authSvc),
		Dashboard:      handlers.NewDashboardHandler(service.NewDashboardService(s.employees, documents, 0, logger, s.metrics), 30, clock),
		Employees:      handlers.NewEmployeesHandler(employeeSvc, reportSvc, 30, clock),
		Companies:      handlers.NewCompaniesHandler(companySvc, reportSvc),
		Roles:          handlers.NewRolesHandler(service.NewRoleService(stubRoles{})),
		EmployeeDocs:   handlers.NewEmployeeDocumentsHandler(service.NewEmployeeDocumentService(s.employees, s.empDocs)),
		Documents:      handlers.NewDocumentsHandler(documentSvc, reportSvc, 30, clock),
		AuthMiddleware: auth.NewAuthMiddleware(authSvc.TokenManager(), users),
		Metrics:        s.metrics,
	})

	s.token = s.login("admin", "s3cret")
}

func (s *RouterSuite) login(username, password string) string {
	resp := s.do(http.MethodPost, "/auth/login", `{"username":"`+username+`","password":"`+password+`"}`, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Data struct {
			Auth struct {
				Token string `json:"token"`
			} `json:"auth"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	return body.Data.Auth.Token
}

func (s *RouterSuite) do(method, target, body string, authenticated bool) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *RouterSuite) TestHealth() {
	resp := s.do(http.MethodGet, "/health/live", "", false)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodGet, "/health/ready", "", false)
	s.Equal(http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](s.T(), resp)
	s.Equal("redis down", body["dependencies"].(map[string]any)["redis"])
}

func (s *RouterSuite) TestLoginFailure() {
	resp := s.do(http.MethodPost, "/auth/login", `{"username":"admin","password":"nope"}`, false)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	body := decode[map[string]map[string]any](s.T(), resp)
	s.Equal("INVALID_CREDENTIALS", body["error"]["code"])

	resp = s.do(http.MethodPost, "/auth/login", `{}`, false)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *RouterSuite) TestProtectedRoutesRequireToken() {
	for _, path := range []string{"/dashboard", "/rh/colaboradores", "/empresas", "/documentos/pdf"} {
		resp := s.do(http.MethodGet, path, "", false)
		s.Equal(http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func (s *RouterSuite) TestDashboard() {
	resp := s.do(http.MethodGet, "/dashboard?dias=abc", "", true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	type card struct {
		Category string `json:"category"`
		Expired  []struct {
			Name      string `json:"name"`
			ExpiresOn string `json:"expires_on"`
		} `json:"expired"`
		ExpiringCount int `json:"expiring_count"`
	}
	body := decode[struct {
		Data struct {
			Today             string `json:"today"`
			WindowDays        int    `json:"window_days"`
			Cards             []card `json:"cards"`
			InactiveEmployees int    `json:"inactive_employees"`
			DocumentsExpired  int    `json:"documents_expired"`
		} `json:"data"`
	}](s.T(), resp)

	s.Equal("2024-06-10", body.Data.Today)
	s.Equal(30, body.Data.WindowDays)
	s.Equal(1, body.Data.InactiveEmployees)
	s.Equal(1, body.Data.DocumentsExpired)
	s.Require().Len(body.Data.Cards, 4)
	s.Equal("aso", body.Data.Cards[0].Category)
	s.Require().Len(body.Data.Cards[0].Expired, 1)
	s.Equal("2024-06-05", body.Data.Cards[0].Expired[0].ExpiresOn)
	s.EqualValues(repository.DefaultCardLimit, s.employees.lastLim.Load())
}

func (s *RouterSuite) TestEmployeeListingFilters() {
	resp := s.do(http.MethodGet, "/rh/colaboradores?doc=toxico&status=a_vencer&dias=15", "", true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body := decode[struct {
		Data []struct {
			Name          string `json:"name"`
			DaysRemaining *int   `json:"days_remaining"`
			Status        string `json:"status"`
		} `json:"data"`
	}](s.T(), resp)

	s.Require().Len(body.Data, 1)
	s.Equal("Ana Souza", body.Data[0].Name)
	s.Equal(10, *body.Data[0].DaysRemaining)
	s.Equal(string(domain.ExpiryExpiringSoon), body.Data[0].Status)
}

func (s *RouterSuite) TestEmployeeNotFound() {
	for _, path := range []string{"/rh/colaboradores/" + missingID, "/rh/colaboradores/not-a-uuid", "/rh/colaboradores/" + missingID + "/pdf"} {
		resp := s.do(http.MethodGet, path, "", true)
		s.Equal(http.StatusNotFound, resp.StatusCode, path)
		body := decode[map[string]map[string]any](s.T(), resp)
		s.Equal("NOT_FOUND", body["error"]["code"], path)
	}
}

func (s *RouterSuite) TestEmployeeProfile() {
	resp := s.do(http.MethodGet, "/rh/colaboradores/"+employeeID, "", true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	body := decode[map[string]map[string]any](s.T(), resp)
	s.Equal("2024-06-05", body["data"]["aso_expires_on"])
}

func (s *RouterSuite) TestPDFDownloads() {
	cases := map[string]string{
		"/rh/colaboradores/" + employeeID + "/pdf": "colaborador_" + employeeID + ".pdf",
		"/empresas/" + companyID + "/pdf":          "empresa_" + companyID + ".pdf",
		"/rh/toxicos.pdf?status=vencidos":          "toxicos.pdf",
		"/documentos/pdf?status=xyz&dias=-1":       "documentos.pdf",
	}
	for path, filename := range cases {
		resp := s.do(http.MethodGet, path, "", true)
		s.Require().Equal(http.StatusOK, resp.StatusCode, path)
		s.Equal("application/pdf", resp.Header.Get("Content-Type"), path)
		s.Contains(resp.Header.Get("Content-Disposition"), filename, path)

		raw, err := io.ReadAll(resp.Body)
		s.Require().NoError(err)
		s.True(strings.HasPrefix(string(raw), "%PDF-"), path)
		s.Contains(string(raw), "Gerado em 10/06/2024", path)
	}
}

func (s *RouterSuite) TestDocuments() {
	resp := s.do(http.MethodGet, "/documentos/count?status=vencidos", "", true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	count := decode[map[string]map[string]any](s.T(), resp)
	s.EqualValues(1, count["data"]["count"])

	resp = s.do(http.MethodGet, "/documentos?empresa=not-a-uuid", "", true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	list := decode[struct {
		Data []struct {
			DaysRemaining *int   `json:"days_remaining"`
			Status        string `json:"status"`
		} `json:"data"`
	}](s.T(), resp)
	s.Require().Len(list.Data, 2)
	s.Equal(-1, *list.Data[0].DaysRemaining)
	s.Equal(string(domain.ExpiryExpired), list.Data[0].Status)
	s.Equal(string(domain.ExpiryExpiringSoon), list.Data[1].Status)
}

func (s *RouterSuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/health/live", "", false)

	resp := s.do(http.MethodGet, "/metrics", "", false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(raw), "hrdocs_http_requests_total")
}

func (s *RouterSuite) TestUnknownRoute() {
	resp := s.do(http.MethodGet, "/nowhere", "", false)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	assert.Equal(s.T(), "application/json", resp.Header.Get("Content-Type"))
}

func (s *RouterSuite) TestRoles() {
	resp := s.do(http.MethodGet, "/rh/funcoes", "", true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}](s.T(), resp)
	s.Require().Len(body.Data, 2)
	s.Equal("Auxiliar", body.Data[0].Name)

	resp = s.do(http.MethodGet, "/rh/funcoes", "", false)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *RouterSuite) TestEmployeeDocuments() {
	resp := s.do(http.MethodGet, "/rh/colaboradores/"+employeeID+"/docs?q=cnh", "", true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Data struct {
			EmployeeName string `json:"employee_name"`
			Documents    []struct {
				Kind     string `json:"kind"`
				FilePath string `json:"file_path"`
			} `json:"documents"`
		} `json:"data"`
	}](s.T(), resp)
	s.Equal("Ana Souza", body.Data.EmployeeName)
	s.Require().Len(body.Data.Documents, 1)
	s.Equal("func_docs/cnh.pdf", body.Data.Documents[0].FilePath)
	s.Equal("cnh", s.empDocs.lastSearch.Load())

	for _, path := range []string{"/rh/colaboradores/" + missingID + "/docs", "/rh/colaboradores/not-a-uuid/docs"} {
		resp = s.do(http.MethodGet, path, "", true)
		s.Equal(http.StatusNotFound, resp.StatusCode, path)
	}
}
