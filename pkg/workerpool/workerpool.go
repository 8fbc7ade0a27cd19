package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrClosed = errors.New("workerpool: closed")

// Task is one unit of work. Fn must be safe to run concurrently with other tasks.
// ResultC, when set, receives exactly one Result and should be buffered.
type Task struct {
	Fn      func() (any, error)
	ResultC chan Result
}

type Result struct {
	Value any
	Err   error
}

type WorkerPool struct {
	tasks  chan Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkerPool starts workerCount workers behind a queue of queueSize.
func NewWorkerPool(workerCount int, queueSize int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		tasks:  make(chan Task, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	wp.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.ctx.Done():
			return
		case task := <-wp.tasks:
			res := run(task.Fn)
			if task.ResultC != nil {
				task.ResultC <- res
			}
		}
	}
}

func run(fn func() (any, error)) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("workerpool: task panicked: %v", r)}
		}
	}()
	v, err := fn()
	return Result{Value: v, Err: err}
}

// Submit queues a task, blocking while the queue is full.
func (wp *WorkerPool) Submit(ctx context.Context, task Task) error {
	select {
	case <-wp.ctx.Done():
		return ErrClosed
	default:
	}
	select {
	case <-wp.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case wp.tasks <- task:
		return nil
	}
}

// Done is closed once Close has been called.
func (wp *WorkerPool) Done() <-chan struct{} { return wp.ctx.Done() }

// Close stops the workers and waits for running tasks. Queued tasks are dropped.
func (wp *WorkerPool) Close() {
	wp.cancel()
	wp.wg.Wait()
}
