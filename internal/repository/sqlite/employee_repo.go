package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"staffbook/internal/domain"
)

var _ domain.EmployeeRepo = (*EmployeeRepo)(nil)

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY,
    name TEXT,
    job_title TEXT,
    department_id INTEGER,
    FOREIGN KEY (department_id) REFERENCES departments(id)
);
`

const dropEmployeesTable = `DROP TABLE IF EXISTS employees;`

const selectEmployees = `SELECT id, name, job_title, department_id FROM employees`

type EmployeeRepo struct {
	db *sqlx.DB
}

// employeeRow is the positional layout of an employees row.
type employeeRow struct {
	ID           int64          `db:"id"`
	Name         sql.NullString `db:"name"`
	JobTitle     sql.NullString `db:"job_title"`
	DepartmentID sql.NullInt64  `db:"department_id"`
}

func NewEmployeeRepo(db *sqlx.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

func (r *EmployeeRepo) CreateTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createEmployeesTable)
	return err
}

func (r *EmployeeRepo) DropTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, dropEmployeesTable)
	return err
}

func (r *EmployeeRepo) Save(ctx context.Context, e *domain.Employee) error {
	if e.Persisted() {
		return domain.ErrAlreadyPersisted
	}
	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO employees (name, job_title, department_id) VALUES (:name, :job_title, :department_id)`,
		toRow(e),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	if !e.Persisted() {
		return domain.ErrNotPersisted
	}
	_, err := r.db.NamedExecContext(ctx,
		`UPDATE employees SET name = :name, job_title = :job_title, department_id = :department_id WHERE id = :id`,
		toRow(e),
	)
	return err
}

// Delete removes the employee's row and resets e.ID to zero.
func (r *EmployeeRepo) Delete(ctx context.Context, e *domain.Employee) error {
	if !e.Persisted() {
		return domain.ErrNotPersisted
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, e.ID); err != nil {
		return err
	}
	e.ID = 0
	return nil
}

func (r *EmployeeRepo) Create(ctx context.Context, name, jobTitle string, departmentID int64) (*domain.Employee, error) {
	e := domain.NewEmployee(name, jobTitle, departmentID)
	if err := r.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EmployeeRepo) GetAll(ctx context.Context) ([]*domain.Employee, error) {
	var rows []employeeRow
	if err := r.db.SelectContext(ctx, &rows, selectEmployees); err != nil {
		return nil, err
	}
	employees := make([]*domain.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, mapRow(row))
	}
	return employees, nil
}

func (r *EmployeeRepo) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.findOne(ctx, selectEmployees+` WHERE id = ?`, id)
}

// FindByName returns the first row whose name matches exactly.
func (r *EmployeeRepo) FindByName(ctx context.Context, name string) (*domain.Employee, error) {
	return r.findOne(ctx, selectEmployees+` WHERE name IS ? LIMIT 1`, name)
}

func (r *EmployeeRepo) findOne(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	var row employeeRow
	err := r.db.GetContext(ctx, &row, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapRow(row), nil
}

func mapRow(row employeeRow) *domain.Employee {
	return &domain.Employee{
		ID:           row.ID,
		Name:         row.Name.String,
		JobTitle:     row.JobTitle.String,
		DepartmentID: row.DepartmentID.Int64,
	}
}

func toRow(e *domain.Employee) employeeRow {
	return employeeRow{
		ID:           e.ID,
		Name:         sql.NullString{String: e.Name, Valid: true},
		JobTitle:     sql.NullString{String: e.JobTitle, Valid: true},
		DepartmentID: sql.NullInt64{Int64: e.DepartmentID, Valid: true},
	}
}
