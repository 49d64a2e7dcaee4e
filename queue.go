package mission

import (
	"context"
	"sync"
)

// eventQueue is an unbounded FIFO queue of updates with a notify channel
// so consumers block instead of polling. Producers never block.
type eventQueue struct {
	mu     sync.Mutex
	items  []Update
	notify chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{notify: make(chan struct{}, 1)}
}

// push appends an update and wakes a waiting consumer.
func (q *eventQueue) push(u Update) {
	q.mu.Lock()
	q.items = append(q.items, u)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// pop removes and returns the oldest update, blocking until one is
// available or the context is cancelled.
func (q *eventQueue) pop(ctx context.Context) (Update, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			u := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return u, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		}
	}
}

// len reports the number of pending updates.
func (q *eventQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
