package repository

import (
	"context"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/persistence"
)

// UserRepository defines persistence access for HR operators.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type userRepository struct {
	q persistence.Queryer
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(q persistence.Queryer) UserRepository {
	return &userRepository{q: q}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id::text, username, name, password_hash, role, active, created_at, updated_at
        FROM users WHERE id=$1`

	return r.get(ctx, query, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id::text, username, name, password_hash, role, active, created_at, updated_at
        FROM users WHERE LOWER(username)=LOWER($1)`

	return r.get(ctx, query, username)
}

func (r *userRepository) get(ctx context.Context, query string, arg string) (*domain.User, error) {
	var user domain.User
	if err := r.q.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, translatePgError(err)
	}
	return &user, nil
}
