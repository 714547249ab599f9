package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"staffbook/internal/domain"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type HireInput struct {
	Name         string `label:"name" validate:"required,max=200"`
	JobTitle     string `label:"job_title" validate:"required,max=200"`
	DepartmentID int64  `label:"department_id" validate:"gte=1"`
}

type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	switch f.Rule {
	case "required":
		return f.Field + " is required"
	case "max":
		return f.Field + " must be at most " + f.Param + " characters"
	case "gte":
		return f.Field + " must be >= " + f.Param
	}
	return f.Field + " failed " + f.Rule
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return "invalid employee: " + strings.Join(msgs, "; ")
}

type EmployeeService struct {
	Repo     domain.EmployeeRepo
	validate *validator.Validate
}

func NewEmployeeService(repo domain.EmployeeRepo) *EmployeeService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("label")
	})
	return &EmployeeService{Repo: repo, validate: v}
}

func (s *EmployeeService) Hire(ctx context.Context, in HireInput) (*domain.Employee, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	if err := s.check(s.validate.Struct(in), ""); err != nil {
		return nil, err
	}
	e, err := s.Repo.Create(ctx, in.Name, in.JobTitle, in.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("hire employee: %w", err)
	}
	return e, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	employees, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	return e, nil
}

func (s *EmployeeService) FindByName(ctx context.Context, name string) (*domain.Employee, error) {
	e, err := s.Repo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("find employee %q: %w", name, err)
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	return e, nil
}

func (s *EmployeeService) Retitle(ctx context.Context, id int64, jobTitle string) (*domain.Employee, error) {
	jobTitle = strings.TrimSpace(jobTitle)
	if err := s.check(s.validate.Var(jobTitle, "required,max=200"), "job_title"); err != nil {
		return nil, err
	}
	return s.modify(ctx, id, func(e *domain.Employee) { e.JobTitle = jobTitle })
}

func (s *EmployeeService) Transfer(ctx context.Context, id, departmentID int64) (*domain.Employee, error) {
	if err := s.check(s.validate.Var(departmentID, "gte=1"), "department_id"); err != nil {
		return nil, err
	}
	return s.modify(ctx, id, func(e *domain.Employee) { e.DepartmentID = departmentID })
}

// Dismiss deletes the employee and returns the removed record. The returned
// value has its ID cleared.
func (s *EmployeeService) Dismiss(ctx context.Context, id int64) (*domain.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, e); err != nil {
		return nil, fmt.Errorf("delete employee %d: %w", id, err)
	}
	return e, nil
}

func (s *EmployeeService) modify(ctx context.Context, id int64, apply func(*domain.Employee)) (*domain.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(e)
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update employee %d: %w", id, err)
	}
	return e, nil
}

// check converts validator errors into a ValidationError. field names the
// value for Var checks, which carry no struct field name.
func (s *EmployeeService) check(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		name := fe.Field()
		if name == "" {
			name = field
		}
		out.Fields = append(out.Fields, FieldError{Field: name, Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}
