package kernel

import (
	"spindle/hal"

	"github.com/google/uuid"
)

// thread is the control block of one green thread.
type thread struct {
	gen   uint32
	used  bool
	id    uint64
	state State
	flags Flags
	// parent is fixed at creation. The root has none.
	parent Handle
	ret    any
	owner  uuid.UUID
	ctx    hal.Context

	// Links of the single lifecycle queue holding the thread.
	prev, next int32
}

// arena owns every thread record of a universe. Records live behind
// pointers so growth never moves a record a caller holds.
type arena struct {
	threads []*thread
	free    []int32
}

func (a *arena) alloc() int32 {
	var idx int32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = int32(len(a.threads))
		a.threads = append(a.threads, &thread{})
	}
	t := a.threads[idx]
	gen := t.gen + 1
	if gen == 0 {
		gen = 1
	}
	*t = thread{gen: gen, used: true, prev: -1, next: -1}
	return idx
}

func (a *arena) release(idx int32) {
	t := a.threads[idx]
	t.used = false
	t.gen++
	t.ret = nil
	t.ctx = nil
	a.free = append(a.free, idx)
}

func (a *arena) handle(idx int32) Handle {
	return Handle{idx: idx, gen: a.threads[idx].gen}
}

func (a *arena) lookup(h Handle) (*thread, bool) {
	if !h.Valid() || h.idx < 0 || int(h.idx) >= len(a.threads) {
		return nil, false
	}
	t := a.threads[h.idx]
	if !t.used || t.gen != h.gen {
		return nil, false
	}
	return t, true
}

// threadQueue is a circular doubly linked queue threaded through the arena.
type threadQueue struct {
	head int32
}

func newThreadQueue() threadQueue { return threadQueue{head: -1} }

func (q *threadQueue) empty() bool { return q.head < 0 }

func (q *threadQueue) pushTail(a *arena, idx int32) {
	t := a.threads[idx]
	if q.head < 0 {
		q.head = idx
		t.prev, t.next = idx, idx
		return
	}
	h := a.threads[q.head]
	tail := h.prev
	t.next = q.head
	t.prev = tail
	a.threads[tail].next = idx
	h.prev = idx
}

func (q *threadQueue) unlink(a *arena, idx int32) {
	t := a.threads[idx]
	if t.next == idx {
		q.head = -1
	} else {
		if q.head == idx {
			q.head = t.next
		}
		a.threads[t.prev].next = t.next
		a.threads[t.next].prev = t.prev
	}
	t.prev, t.next = -1, -1
}

// count walks the ring once.
func (q *threadQueue) count(a *arena) int {
	if q.head < 0 {
		return 0
	}
	n := 0
	cur := q.head
	for {
		n++
		cur = a.threads[cur].next
		if cur == q.head {
			return n
		}
	}
}

// members returns the queue's indexes in order.
func (q *threadQueue) members(a *arena) []int32 {
	if q.head < 0 {
		return nil
	}
	var out []int32
	cur := q.head
	for {
		out = append(out, cur)
		cur = a.threads[cur].next
		if cur == q.head {
			return out
		}
	}
}
