package repository

import (
	"context"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/persistence"
)

// RoleRepository lists job functions.
type RoleRepository interface {
	List(ctx context.Context) ([]domain.Role, error)
}

type roleRepository struct {
	q persistence.Queryer
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(q persistence.Queryer) RoleRepository {
	return &roleRepository{q: q}
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id::text, name FROM roles ORDER BY name ASC`)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, translatePgError(err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}
	return roles, nil
}
