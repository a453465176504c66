package service

import (
	"context"

	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/repository"
)

// EmployeeDocumentService lists the files kept on an employee's record.
type EmployeeDocumentService struct {
	employees repository.EmployeeRepository
	documents repository.EmployeeDocumentRepository
}

// NewEmployeeDocumentService wires the service.
func NewEmployeeDocumentService(employees repository.EmployeeRepository, documents repository.EmployeeDocumentRepository) *EmployeeDocumentService {
	return &EmployeeDocumentService{employees: employees, documents: documents}
}

// List returns the employee and their documents matching search. It fails
// with domain.ErrNotFound when the employee does not exist.
func (s *EmployeeDocumentService) List(ctx context.Context, employeeID, search string) (*domain.Employee, []domain.EmployeeDocument, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, nil, err
	}
	documents, err := s.documents.ListByEmployee(ctx, employee.ID, search)
	if err != nil {
		return nil, nil, err
	}
	if documents == nil {
		documents = []domain.EmployeeDocument{}
	}
	return employee, documents, nil
}
