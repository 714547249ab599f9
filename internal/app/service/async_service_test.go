package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"staffbook/internal/domain"
	"staffbook/pkg/workerpool"
)

func newTestAsync(t *testing.T) *AsyncService {
	t.Helper()
	pool := workerpool.NewWorkerPool(2, 2)
	t.Cleanup(pool.Close)
	return NewAsyncService(pool)
}

func TestDoReturnsTypedValue(t *testing.T) {
	t.Parallel()
	async := newTestAsync(t)

	e, err := Do(context.Background(), async, func() (*domain.Employee, error) {
		return &domain.Employee{ID: 1, Name: "Alice"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "Alice", e.Name)

	var none *domain.Employee
	got, err := Do(context.Background(), async, func() (*domain.Employee, error) { return none, nil })
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDoPropagatesErrors(t *testing.T) {
	t.Parallel()
	async := newTestAsync(t)

	boom := errors.New("boom")
	_, err := Do(context.Background(), async, func() ([]*domain.Employee, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}

func TestSubmitAsyncStopsWaitingOnContext(t *testing.T) {
	t.Parallel()
	async := newTestAsync(t)

	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := async.SubmitAsync(ctx, func() (any, error) {
		<-release
		return nil, nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDoWithInterfaceResultAndNilValue(t *testing.T) {
	t.Parallel()
	async := newTestAsync(t)

	repo, err := Do(context.Background(), async, func() (domain.EmployeeRepo, error) { return nil, nil })
	require.NoError(t, err)
	require.Nil(t, repo)
}
