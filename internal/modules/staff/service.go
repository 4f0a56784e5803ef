package staff

import (
	"context"

	"crmportal/internal/domain"
)

type EmployeeLister interface {
	List(ctx context.Context) ([]domain.Employee, error)
}

type Service struct {
	employees EmployeeLister
}

func NewService(employees EmployeeLister) *Service {
	return &Service{employees: employees}
}

// List returns employees ordered by last name, then first name.
func (s *Service) List(ctx context.Context) ([]domain.Employee, error) {
	out, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Employee{}
	}
	return out, nil
}
