package audit

import (
	"context"
	"sync"
)

type Task func() error

// WorkerPool runs tasks on a fixed number of goroutines.
type WorkerPool struct {
	pool chan Task
	wg   sync.WaitGroup
	once sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	if size < 1 {
		size = 1
	}
	wp := &WorkerPool{pool: make(chan Task)}

	wp.wg.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.pool {
		_ = task()
	}
}

// Do hands task to a free worker and waits for its result.
func (wp *WorkerPool) Do(ctx context.Context, task Task) error {
	done := make(chan error, 1)
	wrapped := func() error {
		err := task()
		done <- err
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.pool <- wrapped:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// Close stops accepting tasks and waits for running ones to finish.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		close(wp.pool)
	})
	wp.wg.Wait()
}
