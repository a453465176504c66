package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/persistence"
)

// CompanyRepository provides read access to companies.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]domain.Company, error)
}

// CompanyFilter narrows the company listing.
type CompanyFilter struct {
	Search string
	Active *bool
}

type companyRepository struct {
	q persistence.Queryer
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(q persistence.Queryer) CompanyRepository {
	return &companyRepository{q: q}
}

const companySelect = `
        SELECT id::text, legal_name, trade_name, cnpj, state_registration,
               street, number, complement, district, city, state, postal_code,
               active, alert_email, alert_whatsapp, created_at, updated_at
        FROM companies`

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	company, err := scanCompany(r.q.QueryRow(ctx, companySelect+" WHERE id = $1", id))
	if err != nil {
		return nil, translatePgError(err)
	}
	return company, nil
}

func (r *companyRepository) List(ctx context.Context, filter CompanyFilter) ([]domain.Company, error) {
	args := []any{}
	clauses := []string{}

	if strings.TrimSpace(filter.Search) != "" {
		args = append(args, likePattern(filter.Search))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(LOWER(legal_name) LIKE $%d OR LOWER(trade_name) LIKE $%d OR cnpj LIKE $%d)", n, n, n))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active = $%d", len(args)))
	}

	rows, err := r.q.Query(ctx, companySelect+where(clauses)+" ORDER BY legal_name ASC", args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, translatePgError(err)
		}
		companies = append(companies, *company)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}
	return companies, nil
}

func scanCompany(row rowScanner) (*domain.Company, error) {
	var company domain.Company
	if err := row.Scan(
		&company.ID,
		&company.LegalName,
		&company.TradeName,
		&company.CNPJ,
		&company.StateRegistration,
		&company.Street,
		&company.Number,
		&company.Complement,
		&company.District,
		&company.City,
		&company.State,
		&company.PostalCode,
		&company.Active,
		&company.AlertEmail,
		&company.AlertWhatsApp,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}
