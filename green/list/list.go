// Package list is a small FIFO list with removal by identity.
package list

type node[T comparable] struct {
	v          T
	prev, next *node[T]
}

// List is a FIFO of values. Pointer values are compared by identity.
//
// The zero value is an empty list ready to use.
type List[T comparable] struct {
	head, tail *node[T]
	n          int
}

// New returns an empty list.
func New[T comparable]() *List[T] {
	return &List[T]{}
}

// Len returns the number of queued values.
func (l *List[T]) Len() int { return l.n }

// Enqueue appends v to the tail.
func (l *List[T]) Enqueue(v T) {
	nd := &node[T]{v: v, prev: l.tail}
	if l.tail == nil {
		l.head = nd
	} else {
		l.tail.next = nd
	}
	l.tail = nd
	l.n++
}

// Dequeue removes and returns the head value.
func (l *List[T]) Dequeue() (T, bool) {
	nd := l.head
	if nd == nil {
		var zero T
		return zero, false
	}
	l.unlink(nd)
	return nd.v, true
}

// Remove unlinks the first node holding v. It reports whether one was found.
func (l *List[T]) Remove(v T) bool {
	nd := l.find(v)
	if nd == nil {
		return false
	}
	l.unlink(nd)
	return true
}

// Contains reports whether v is queued.
func (l *List[T]) Contains(v T) bool {
	return l.find(v) != nil
}

// Free drops every node. The list stays usable.
func (l *List[T]) Free() {
	for nd := l.head; nd != nil; {
		next := nd.next
		nd.prev, nd.next = nil, nil
		nd = next
	}
	l.head, l.tail, l.n = nil, nil, 0
}

func (l *List[T]) find(v T) *node[T] {
	for nd := l.head; nd != nil; nd = nd.next {
		if nd.v == v {
			return nd
		}
	}
	return nil
}

func (l *List[T]) unlink(nd *node[T]) {
	if nd.prev == nil {
		l.head = nd.next
	} else {
		nd.prev.next = nd.next
	}
	if nd.next == nil {
		l.tail = nd.prev
	} else {
		nd.next.prev = nd.prev
	}
	nd.prev, nd.next = nil, nil
	l.n--
}
