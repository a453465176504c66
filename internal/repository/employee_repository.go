package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/persistence"
)

// EmployeeRepository provides read access to employees and their expiry dates.
type EmployeeRepository interface {
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	ListByExpiry(ctx context.Context, query ExpiryQuery) ([]domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Count(ctx context.Context, active *bool) (int, error)
	Columns() ExpiryColumns
}

// EmployeeFilter narrows the employee listing. Zero values disable a filter.
type EmployeeFilter struct {
	Search     string
	Active     *bool
	BirthMonth int
}

// ExpiryQuery selects employees by the expiry status of one category.
// An empty Status lists every employee with a value for the category.
type ExpiryQuery struct {
	Category   domain.Category
	Status     domain.ExpiryStatus
	Today      time.Time
	WindowDays int
	Limit      int
}

type employeeRepository struct {
	q         persistence.Queryer
	columns   ExpiryColumns
	selectSQL string
	table     string
}

// NewEmployeeRepository returns a Postgres-backed implementation reading from
// table with the resolved expiry columns.
func NewEmployeeRepository(q persistence.Queryer, table string, columns ExpiryColumns) EmployeeRepository {
	if table == "" {
		table = "employees"
	}
	table = pgx.Identifier{table}.Sanitize()

	selectSQL := fmt.Sprintf(`
        SELECT e.id::text, e.name, e.company_id::text, COALESCE(NULLIF(c.trade_name, ''), c.legal_name, ''),
               e.role_id::text, COALESCE(r.name, ''), e.active, e.birth_date,
               e.cpf, e.rg, e.email, e.phone, e.mobile, e.street, e.number, e.complement,
               e.district, e.city, e.state, e.postal_code, e.admitted_on, e.photo_path,
               e.aso_kind, e.cnh_number, %s, %s, %s, e.created_at, e.updated_at
        FROM %s e
        LEFT JOIN companies c ON c.id = e.company_id
        LEFT JOIN roles r ON r.id = e.role_id`,
		columns.Health.dateExpr("e"),
		columns.Credential.dateExpr("e"),
		columns.Toxicology.dateExpr("e"),
		table,
	)

	return &employeeRepository{q: q, columns: columns, selectSQL: selectSQL, table: table}
}

func (r *employeeRepository) Columns() ExpiryColumns {
	return r.columns
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	args := []any{}
	clauses := []string{}

	if strings.TrimSpace(filter.Search) != "" {
		args = append(args, likePattern(filter.Search))
		clauses = append(clauses, fmt.Sprintf("LOWER(e.name) LIKE $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("e.active = $%d", len(args)))
	}
	if filter.BirthMonth >= 1 && filter.BirthMonth <= 12 {
		args = append(args, filter.BirthMonth)
		clauses = append(clauses, fmt.Sprintf("EXTRACT(MONTH FROM e.birth_date) = $%d", len(args)))
	}

	query := r.selectSQL + where(clauses) + " ORDER BY e.name ASC"
	return r.query(ctx, query, args...)
}

func (r *employeeRepository) ListByExpiry(ctx context.Context, q ExpiryQuery) ([]domain.Employee, error) {
	col, ok := r.columns.For(q.Category)
	if !ok {
		return nil, domain.ErrSchemaUnavailable
	}

	expr := col.dateExpr("e")
	condition, args := statusPredicate(expr, q.Status, q.Today, q.WindowDays, nil)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultCardLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf("%s WHERE %s ORDER BY %s ASC, e.name ASC LIMIT $%d", r.selectSQL, condition, expr, len(args))
	return r.query(ctx, query, args...)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := scanEmployee(r.q.QueryRow(ctx, r.selectSQL+" WHERE e.id = $1", id))
	if err != nil {
		return nil, translatePgError(err)
	}
	return employee, nil
}

func (r *employeeRepository) Count(ctx context.Context, active *bool) (int, error) {
	query := "SELECT COUNT(*) FROM " + r.table
	args := []any{}
	if active != nil {
		args = append(args, *active)
		query += " WHERE active = $1"
	}

	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, translatePgError(err)
	}
	return count, nil
}

func (r *employeeRepository) query(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, translatePgError(err)
		}
		employees = append(employees, *employee)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}
	return employees, nil
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		employee                    domain.Employee
		companyID, roleID           sql.NullString
		birthDate, admittedOn       sql.NullTime
		asoExpiry, credentialExpiry sql.NullTime
		toxicologyExpiry            sql.NullTime
	)

	if err := row.Scan(
		&employee.ID,
		&employee.Name,
		&companyID,
		&employee.CompanyName,
		&roleID,
		&employee.RoleName,
		&employee.Active,
		&birthDate,
		&employee.CPF,
		&employee.RG,
		&employee.Email,
		&employee.Phone,
		&employee.Mobile,
		&employee.Street,
		&employee.Number,
		&employee.Complement,
		&employee.District,
		&employee.City,
		&employee.State,
		&employee.PostalCode,
		&admittedOn,
		&employee.PhotoPath,
		&employee.ASOKind,
		&employee.CNHNumber,
		&asoExpiry,
		&credentialExpiry,
		&toxicologyExpiry,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}

	employee.CompanyID = nullString(companyID)
	employee.RoleID = nullString(roleID)
	employee.BirthDate = nullDate(birthDate)
	employee.AdmittedOn = nullDate(admittedOn)
	employee.ASOExpiresOn = nullDate(asoExpiry)
	employee.CredentialExpiresOn = nullDate(credentialExpiry)
	employee.ToxicologyExpiresOn = nullDate(toxicologyExpiry)
	return &employee, nil
}
