package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	tests := []struct {
		name           string
		numTasks       int
		numWorkers     int
		expectedErrors int
	}{
		{
			name:       "Runs every task",
			numTasks:   5,
			numWorkers: 2,
		},
		{
			name:           "Returns task errors to the caller",
			numTasks:       4,
			numWorkers:     2,
			expectedErrors: 1,
		},
		{
			name:       "Non-positive size still gets one worker",
			numTasks:   3,
			numWorkers: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool(tt.numWorkers)
			defer wp.Close()

			var executed, failed atomic.Int64
			var wg sync.WaitGroup
			for i := 0; i < tt.numTasks; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					err := wp.Do(context.Background(), func() error {
						if i == tt.numTasks-1 && tt.expectedErrors > 0 {
							return assert.AnError
						}
						executed.Add(1)
						return nil
					})
					if err != nil {
						failed.Add(1)
					}
				}(i)
			}
			wg.Wait()

			assert.Equal(t, int64(tt.numTasks-tt.expectedErrors), executed.Load())
			assert.Equal(t, int64(tt.expectedErrors), failed.Load())
		})
	}
}

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	wp := NewWorkerPool(2)
	defer wp.Close()

	var running, peak atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = wp.Do(context.Background(), func() error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestWorkerPool_CanceledContext(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	started := make(chan struct{})
	block := make(chan struct{})
	go func() {
		_ = wp.Do(context.Background(), func() error {
			close(started)
			<-block
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wp.Do(ctx, func() error {
		t.Error("task must not run with a canceled context")
		return nil
	})
	close(block)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkerPool_CloseIsIdempotent(t *testing.T) {
	wp := NewWorkerPool(3)
	assert.NoError(t, wp.Do(context.Background(), func() error { return nil }))

	wp.Close()
	wp.Close()
}
