package kernel

// Queue is a bounded FIFO for handing values between execution contexts.
//
// It separates the non-blocking poll primitives (TryPush, TryPop) from the
// one blocking wait (Pop), so each caller states which one it means.
type Queue[T any] struct {
	ch chan T
}

// NewQueue returns an empty queue holding at most capacity values.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{ch: make(chan T, capacity)}
}

// TryPush attempts to enqueue v, returning false if the queue is full.
func (q *Queue[T]) TryPush(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// TryPop attempts to dequeue one value, returning false if empty.
func (q *Queue[T]) TryPop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Pop blocks until one value is available.
func (q *Queue[T]) Pop() T {
	return <-q.ch
}

// Len returns the number of queued values. It is a snapshot.
func (q *Queue[T]) Len() int { return len(q.ch) }

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int { return cap(q.ch) }
