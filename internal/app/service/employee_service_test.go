package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"staffbook/config"
	"staffbook/internal/domain"
	"staffbook/internal/repository/sqlite"
)

func newTestService(t *testing.T) *EmployeeService {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, config.Database{DSN: "file::memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	return NewEmployeeService(sqlite.NewEmployeeRepo(db))
}

// failingRepo fails every call with err.
type failingRepo struct {
	domain.EmployeeRepo
	err error
}

func (r failingRepo) Create(context.Context, string, string, int64) (*domain.Employee, error) {
	return nil, r.err
}

func (r failingRepo) FindByID(context.Context, int64) (*domain.Employee, error) {
	return nil, r.err
}

func TestHireTrimsAndPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	e, err := svc.Hire(ctx, HireInput{Name: "  Alice ", JobTitle: " Engineer", DepartmentID: 2})
	require.NoError(t, err)
	require.NotZero(t, e.ID)
	require.Equal(t, "Alice", e.Name)
	require.Equal(t, "Engineer", e.JobTitle)

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, e, got)
}

func TestHireValidation(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	tests := []struct {
		name   string
		in     HireInput
		fields []string
	}{
		{name: "empty name", in: HireInput{Name: " ", JobTitle: "Clerk", DepartmentID: 1}, fields: []string{"name"}},
		{name: "zero department", in: HireInput{Name: "Bob", JobTitle: "Clerk"}, fields: []string{"department_id"}},
		{name: "long title", in: HireInput{Name: "Bob", JobTitle: strings.Repeat("x", 201), DepartmentID: 1}, fields: []string{"job_title"}},
		{name: "everything", in: HireInput{DepartmentID: -1}, fields: []string{"name", "job_title", "department_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Hire(context.Background(), tt.in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			require.Equal(t, tt.fields, got)
		})
	}

	employees, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, employees)
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: []FieldError{
		{Field: "name", Rule: "required"},
		{Field: "department_id", Rule: "gte", Param: "1"},
	}}
	require.Equal(t, "invalid employee: name is required; department_id must be >= 1", err.Error())
}

func TestGetAndFindByNameMisses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Get(ctx, 5)
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	_, err = svc.FindByName(ctx, "Nobody")
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestRetitleAndTransfer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	e, err := svc.Hire(ctx, HireInput{Name: "Carol", JobTitle: "Analyst", DepartmentID: 1})
	require.NoError(t, err)

	_, err = svc.Retitle(ctx, e.ID, "Lead Analyst")
	require.NoError(t, err)
	_, err = svc.Transfer(ctx, e.ID, 7)
	require.NoError(t, err)

	got, err := svc.FindByName(ctx, "Carol")
	require.NoError(t, err)
	require.Equal(t, &domain.Employee{ID: e.ID, Name: "Carol", JobTitle: "Lead Analyst", DepartmentID: 7}, got)

	var verr *ValidationError
	_, err = svc.Retitle(ctx, e.ID, "")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "job_title", verr.Fields[0].Field)

	_, err = svc.Transfer(ctx, e.ID, 0)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "department_id", verr.Fields[0].Field)

	_, err = svc.Retitle(ctx, e.ID+1, "Anything")
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDismiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	e, err := svc.Hire(ctx, HireInput{Name: "Dan", JobTitle: "Driver", DepartmentID: 1})
	require.NoError(t, err)

	removed, err := svc.Dismiss(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, "Dan", removed.Name)
	require.False(t, removed.Persisted())

	_, err = svc.Dismiss(ctx, e.ID)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	t.Parallel()
	boom := errors.New("disk on fire")
	svc := NewEmployeeService(failingRepo{err: boom})

	_, err := svc.Hire(context.Background(), HireInput{Name: "Eve", JobTitle: "Ops", DepartmentID: 1})
	require.ErrorIs(t, err, boom)

	_, err = svc.Get(context.Background(), 1)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrEmployeeNotFound)
}
