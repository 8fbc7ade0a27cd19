package service

import (
	"context"

	"shift-tracker/pkg/workerpool"
)

// AsyncService bounds how many feed and workbook renders run at once.
type AsyncService struct {
	Pool *workerpool.WorkerPool
}

func NewAsyncService(pool *workerpool.WorkerPool) *AsyncService {
	return &AsyncService{Pool: pool}
}

// SubmitAsync runs fn on the pool and waits for its result.
func (a *AsyncService) SubmitAsync(ctx context.Context, fn func() (any, error)) (any, error) {
	resCh := make(chan workerpool.Result, 1)
	if err := a.Pool.Submit(ctx, workerpool.Task{Fn: fn, ResultC: resCh}); err != nil {
		return nil, err
	}
	select {
	case res := <-resCh:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-a.Pool.Done():
		return nil, workerpool.ErrClosed
	}
}

// Run is the typed form of SubmitAsync.
func Run[T any](ctx context.Context, a *AsyncService, fn func() (T, error)) (T, error) {
	var zero T
	v, err := a.SubmitAsync(ctx, func() (any, error) { return fn() })
	if err != nil {
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}
