package service

import (
	"context"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/repository"
)

// RoleService exposes the job function catalog.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService wires the service.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// List returns every role ordered by name.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}
