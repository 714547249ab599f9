package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAlreadyPersisted is returned by Save for an employee that already has an ID.
	ErrAlreadyPersisted = errors.New("employee already persisted")
	// ErrNotPersisted is returned by Update and Delete for an employee without an ID.
	ErrNotPersisted = errors.New("employee not persisted")
)

// EmployeeRepo maps Employee values onto rows of the employees table.
//
// Lookups return (nil, nil) when no row matches. Update and Delete of an ID
// that has no row affect nothing and return nil.
type EmployeeRepo interface {
	CreateTable(ctx context.Context) error
	DropTable(ctx context.Context) error

	Save(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, e *Employee) error
	Create(ctx context.Context, name, jobTitle string, departmentID int64) (*Employee, error)

	GetAll(ctx context.Context) ([]*Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByName(ctx context.Context, name string) (*Employee, error)
}

// Employee is one row of the employees table. ID is zero until the
// employee has been saved.
type Employee struct {
	ID           int64
	Name         string
	JobTitle     string
	DepartmentID int64
}

func NewEmployee(name, jobTitle string, departmentID int64) *Employee {
	return &Employee{Name: name, JobTitle: jobTitle, DepartmentID: departmentID}
}

// Persisted reports whether the employee has been assigned an ID by storage.
func (e *Employee) Persisted() bool {
	return e.ID != 0
}

func (e *Employee) String() string {
	return fmt.Sprintf("<Employee %d: %s, %s, Department ID: %d >", e.ID, e.Name, e.JobTitle, e.DepartmentID)
}
