// Package ring provides the bounded message queue behind each channel.
package ring

// Ring is a fixed-capacity FIFO. It never blocks: callers that need to wait
// retry around TryPush/TryPop at their own suspension points.
type Ring[T any] struct {
	head  uint
	tail  uint
	slots []T
}

// New returns an empty ring holding up to capacity values. A capacity below
// one is raised to one.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{slots: make([]T, capacity)}
}

// Cap returns the capacity, or 0 once deleted.
func (r *Ring[T]) Cap() int { return len(r.slots) }

// Len returns the number of queued values.
func (r *Ring[T]) Len() int { return int(r.head - r.tail) }

// TryPush enqueues v, returning false if the ring is full or deleted.
func (r *Ring[T]) TryPush(v T) bool {
	n := uint(len(r.slots))
	if n == 0 || r.head-r.tail >= n {
		return false
	}
	r.slots[r.head%n] = v
	r.head++
	return true
}

// TryPop dequeues one value, returning false if the ring is empty.
func (r *Ring[T]) TryPop() (T, bool) {
	var zero T
	if r.tail == r.head {
		return zero, false
	}
	i := r.tail % uint(len(r.slots))
	v := r.slots[i]
	r.slots[i] = zero
	r.tail++
	return v, true
}

// Delete drops the contents and the backing storage.
func (r *Ring[T]) Delete() {
	r.slots = nil
	r.head, r.tail = 0, 0
}
