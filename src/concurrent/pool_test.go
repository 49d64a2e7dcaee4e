package concurrent

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	const limit = 3
	wp := NewWorkerPool(limit)

	var active, peak int32
	var wg sync.WaitGroup
	gate := make(chan struct{})

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = wp.Do(context.Background(), func() error {
				n := atomic.AddInt32(&active, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				<-gate
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}

	close(gate)
	wg.Wait()

	if got := atomic.LoadInt32(&peak); got > limit {
		t.Fatalf("pool admitted %d concurrent workers, limit is %d", got, limit)
	}
}

func TestWorkerPoolReturnsFnError(t *testing.T) {
	wp := NewWorkerPool(1)
	boom := errors.New("task failed")
	if err := wp.Do(context.Background(), func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected the task error, got %v", err)
	}
}

func TestWorkerPoolHonoursContext(t *testing.T) {
	wp := NewWorkerPool(1)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = wp.Do(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := wp.Do(ctx, func() error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled while the pool is full, got %v", err)
	}
	close(release)
}
