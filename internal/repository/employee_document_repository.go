package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/persistence"
)

// EmployeeDocumentRepository reads the files kept on employee records.
type EmployeeDocumentRepository interface {
	ListByEmployee(ctx context.Context, employeeID, search string) ([]domain.EmployeeDocument, error)
}

type employeeDocumentRepository struct {
	q persistence.Queryer
}

// NewEmployeeDocumentRepository returns a Postgres-backed implementation.
func NewEmployeeDocumentRepository(q persistence.Queryer) EmployeeDocumentRepository {
	return &employeeDocumentRepository{q: q}
}

const employeeDocumentSelect = `
        SELECT id::text, employee_id::text, kind, description, file_path, created_at
        FROM employee_documents`

// ListByEmployee returns the employee's documents, oldest first. A search
// matches kind or description case-insensitively.
func (r *employeeDocumentRepository) ListByEmployee(ctx context.Context, employeeID, search string) ([]domain.EmployeeDocument, error) {
	args := []any{employeeID}
	clauses := []string{"employee_id = $1"}

	if strings.TrimSpace(search) != "" {
		args = append(args, likePattern(search))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(LOWER(kind) LIKE $%d OR LOWER(description) LIKE $%d)", n, n))
	}

	rows, err := r.q.Query(ctx, employeeDocumentSelect+where(clauses)+" ORDER BY created_at ASC, id ASC", args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	var documents []domain.EmployeeDocument
	for rows.Next() {
		var d domain.EmployeeDocument
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Kind, &d.Description, &d.FilePath, &d.CreatedAt); err != nil {
			return nil, translatePgError(err)
		}
		documents = append(documents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}
	return documents, nil
}
