package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/repository"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

// fakeEmployees answers queries the way the SQL repository does, from memory.
type fakeEmployees struct {
	rows    []domain.Employee
	columns repository.ExpiryColumns
	err     error

	mu      sync.Mutex
	queries []repository.ExpiryQuery
}

func (f *fakeEmployees) List(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Employee{}
	for _, e := range f.rows {
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Active != nil && e.Active != *filter.Active {
			continue
		}
		if filter.BirthMonth != 0 && (e.BirthDate == nil || int(e.BirthDate.Month()) != filter.BirthMonth) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployees) ListByExpiry(_ context.Context, q repository.ExpiryQuery) ([]domain.Employee, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.columns.For(q.Category); !ok {
		return nil, domain.ErrSchemaUnavailable
	}

	out := []domain.Employee{}
	for _, e := range f.rows {
		expiresOn := e.ExpiryFor(q.Category)
		if expiresOn == nil {
			continue
		}
		if domain.Classify(expiresOn, q.Today, q.WindowDays) != q.Status {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryFor(q.Category).Before(*out[j].ExpiryFor(q.Category))
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeEmployees) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			e := f.rows[i]
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEmployees) Count(_ context.Context, active *bool) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, e := range f.rows {
		if active == nil || e.Active == *active {
			n++
		}
	}
	return n, nil
}

func (f *fakeEmployees) Columns() repository.ExpiryColumns {
	return f.columns
}

type fakeDocuments struct {
	rows []domain.Document
	err  error

	mu      sync.Mutex
	queries []repository.DocumentQuery
}

func (f *fakeDocuments) ListByExpiry(_ context.Context, q repository.DocumentQuery) ([]domain.Document, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Document{}
	for _, d := range f.rows {
		if q.Status != "" && d.Status(q.Today, q.WindowDays) != q.Status {
			continue
		}
		if q.CompanyID != "" && d.CompanyID != q.CompanyID {
			continue
		}
		out = append(out, d)
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeDocuments) Count(ctx context.Context, q repository.CountQuery) (int, error) {
	docs, err := f.ListByExpiry(ctx, repository.DocumentQuery{Status: q.Status, Today: q.Today, WindowDays: q.WindowDays})
	return len(docs), err
}

type fakeCompanies struct {
	rows []domain.Company
	err  error
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*domain.Company, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			c := f.rows[i]
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCompanies) List(_ context.Context, filter repository.CompanyFilter) ([]domain.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Company{}
	for _, c := range f.rows {
		if filter.Active != nil && c.Active != *filter.Active {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeUsers struct {
	rows []domain.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			u := f.rows[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for i := range f.rows {
		if strings.EqualFold(f.rows[i].Username, username) {
			u := f.rows[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeLocker struct {
	held map[string]bool
	err  error
}

func (f *fakeLocker) AcquireOnce(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.held == nil {
		f.held = map[string]bool{}
	}
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

type fakeEmployeeDocuments struct {
	rows []domain.EmployeeDocument
}

func (f *fakeEmployeeDocuments) ListByEmployee(_ context.Context, employeeID, search string) ([]domain.EmployeeDocument, error) {
	needle := strings.ToLower(strings.TrimSpace(search))
	var out []domain.EmployeeDocument
	for _, d := range f.rows {
		if d.EmployeeID != employeeID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(d.Kind), needle) && !strings.Contains(strings.ToLower(d.Description), needle) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type fakeRoles struct {
	rows []domain.Role
}

func (f *fakeRoles) List(context.Context) ([]domain.Role, error) {
	out := append([]domain.Role{}, f.rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
