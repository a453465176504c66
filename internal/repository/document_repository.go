package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/persistence"
)

// DocumentRepository provides read access to corporate documents.
type DocumentRepository interface {
	ListByExpiry(ctx context.Context, query DocumentQuery) ([]domain.Document, error)
	Count(ctx context.Context, query CountQuery) (int, error)
}

// DocumentQuery lists documents. Without a Status every document is returned,
// undated ones last. Limit <= 0 means no limit.
type DocumentQuery struct {
	Status     domain.ExpiryStatus
	Today      time.Time
	WindowDays int
	Limit      int
	CompanyID  string
	Search     string
}

// CountQuery counts documents in a status. Without a Status every dated
// document is counted.
type CountQuery struct {
	Status     domain.ExpiryStatus
	Today      time.Time
	WindowDays int
}

type documentRepository struct {
	q persistence.Queryer
}

// NewDocumentRepository returns a Postgres-backed implementation.
func NewDocumentRepository(q persistence.Queryer) DocumentRepository {
	return &documentRepository{q: q}
}

const documentSelect = `
        SELECT d.id::text, d.company_id::text, COALESCE(NULLIF(c.trade_name, ''), c.legal_name, ''),
               d.type_id::text, COALESCE(t.name, ''), d.description, d.number,
               d.issued_on, d.expires_on, d.created_at, d.updated_at
        FROM documents d
        JOIN companies c ON c.id = d.company_id
        LEFT JOIN document_types t ON t.id = d.type_id`

func (r *documentRepository) ListByExpiry(ctx context.Context, q DocumentQuery) ([]domain.Document, error) {
	args := []any{}
	clauses := []string{}

	if q.Status != "" {
		var condition string
		condition, args = statusPredicate("d.expires_on", q.Status, q.Today, q.WindowDays, args)
		clauses = append(clauses, condition)
	}
	if q.CompanyID != "" {
		args = append(args, q.CompanyID)
		clauses = append(clauses, fmt.Sprintf("d.company_id = $%d", len(args)))
	}
	if strings.TrimSpace(q.Search) != "" {
		args = append(args, likePattern(q.Search))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(d.description) LIKE $%d OR LOWER(d.number) LIKE $%d OR LOWER(COALESCE(t.name, '')) LIKE $%d OR LOWER(c.legal_name) LIKE $%d)",
			n, n, n, n))
	}

	query := documentSelect + where(clauses) + " ORDER BY d.expires_on ASC NULLS LAST, c.legal_name ASC"
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, translatePgError(err)
		}
		documents = append(documents, *document)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}
	return documents, nil
}

func (r *documentRepository) Count(ctx context.Context, q CountQuery) (int, error) {
	condition, args := statusPredicate("expires_on", q.Status, q.Today, q.WindowDays, nil)

	var count int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM documents WHERE "+condition, args...).Scan(&count); err != nil {
		return 0, translatePgError(err)
	}
	return count, nil
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var (
		document            domain.Document
		typeID              sql.NullString
		issuedOn, expiresOn sql.NullTime
	)

	if err := row.Scan(
		&document.ID,
		&document.CompanyID,
		&document.CompanyName,
		&typeID,
		&document.TypeName,
		&document.Description,
		&document.Number,
		&issuedOn,
		&expiresOn,
		&document.CreatedAt,
		&document.UpdatedAt,
	); err != nil {
		return nil, err
	}

	document.TypeID = nullString(typeID)
	document.IssuedOn = nullDate(issuedOn)
	document.ExpiresOn = nullDate(expiresOn)
	return &document, nil
}
