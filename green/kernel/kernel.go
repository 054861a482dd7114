package kernel

import (
	"fmt"

	"spindle/hal"

	"github.com/google/uuid"
)

// Universe is one cooperative scheduler: the thread arena, the runnable,
// blocked and dead queues, the running thread and the id counter.
//
// A universe is driven by whichever of its threads is running, so all of its
// methods must be called from that thread. Universes share nothing; run one
// per OS thread for parallelism (see SpawnKthread).
type Universe struct {
	arena   arena
	runq    threadQueue
	blockq  threadQueue
	deadq   threadQueue
	current int32
	root    *Context
	nextID  uint64

	owner uuid.UUID
	sw    hal.Switcher
	log   hal.Logger
}

// Option configures a Universe.
type Option func(*Universe)

// WithLogger routes lifecycle lines to l.
func WithLogger(l hal.Logger) Option {
	return func(u *Universe) {
		if l != nil {
			u.log = l
		}
	}
}

// WithSwitcher replaces the context-switch primitive.
func WithSwitcher(s hal.Switcher) Option {
	return func(u *Universe) {
		if s != nil {
			u.sw = s
		}
	}
}

// WithOwner records the kernel-thread anchor hosting the universe.
func WithOwner(id uuid.UUID) Option {
	return func(u *Universe) { u.owner = id }
}

// New creates an empty universe. Its root thread is adopted on the first
// call to Root.
func New(opts ...Option) *Universe {
	u := &Universe{
		runq:    newThreadQueue(),
		blockq:  newThreadQueue(),
		deadq:   newThreadQueue(),
		current: -1,
		sw:      hal.NewHostSwitcher(),
		log:     hal.Discard,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Root returns the context of the universe's root thread, adopting the
// calling goroutine as that thread on first use.
func (u *Universe) Root() *Context {
	if u.root != nil {
		return u.root
	}
	idx := u.arena.alloc()
	t := u.arena.threads[idx]
	t.id = u.nextID
	u.nextID++
	t.state = Runnable
	t.owner = u.owner
	t.ctx = u.sw.Current()
	u.runq.pushTail(&u.arena, idx)
	u.current = idx
	u.root = &Context{u: u, self: u.arena.handle(idx)}
	u.logf("bootstrap root thread %d (owner %s)", t.id, u.owner)
	return u.root
}

// Owner returns the anchor identity hosting the universe, or uuid.Nil.
func (u *Universe) Owner() uuid.UUID { return u.owner }

// Info counts the threads in queue q by walking it.
func (u *Universe) Info(q Queue) int {
	switch q {
	case QueueRunnable:
		return u.runq.count(&u.arena)
	case QueueBlocked:
		return u.blockq.count(&u.arena)
	case QueueZombies:
		return u.deadq.count(&u.arena)
	default:
		return 0
	}
}

// ID returns the thread's identifier.
func (u *Universe) ID(h Handle) (uint64, error) {
	t, ok := u.arena.lookup(h)
	if !ok {
		return 0, ErrStaleHandle
	}
	return t.id, nil
}

// State returns the thread's lifecycle state.
func (u *Universe) State(h Handle) (State, error) {
	t, ok := u.arena.lookup(h)
	if !ok {
		return Dead, ErrStaleHandle
	}
	return t.state, nil
}

// Parent returns the thread's creator. The root has NoThread.
func (u *Universe) Parent(h Handle) (Handle, error) {
	t, ok := u.arena.lookup(h)
	if !ok {
		return NoThread, ErrStaleHandle
	}
	return t.parent, nil
}

// schedule moves the running thread to the queue its state names and
// dispatches the thread after it in the runnable ring. A dead thread never
// returns from here.
func (u *Universe) schedule() {
	cur := u.current
	t := u.arena.threads[cur]
	next := t.next

	switch t.state {
	case Blocked, Waiting:
		u.runq.unlink(&u.arena, cur)
		u.blockq.pushTail(&u.arena, cur)
	case Dead:
		u.runq.unlink(&u.arena, cur)
		u.deadq.pushTail(&u.arena, cur)
	}
	if u.runq.empty() {
		panic(fault(fmt.Sprintf("no runnable thread after thread %d went %s", t.id, t.state)))
	}

	u.current = next
	nt := u.arena.threads[next]
	if t.state == Dead {
		u.sw.Exit(nt.ctx)
		return
	}
	u.sw.Switch(nt.ctx, t.ctx)
}

// wake moves a waiting thread from the blocked queue to the runnable tail.
func (u *Universe) wake(idx int32) {
	t := u.arena.threads[idx]
	t.state = Runnable
	u.blockq.unlink(&u.arena, idx)
	u.runq.pushTail(&u.arena, idx)
}

// collect reclaims every dead no-join thread.
func (u *Universe) collect() {
	for _, idx := range u.deadq.members(&u.arena) {
		t := u.arena.threads[idx]
		if !t.flags.NoJoin {
			continue
		}
		u.deadq.unlink(&u.arena, idx)
		u.logf("gc reclaimed thread %d", t.id)
		u.arena.release(idx)
	}
}

func (u *Universe) running(c *Context) {
	if c == nil || c.u != u {
		panic(fault("context does not belong to this universe"))
	}
	if u.current < 0 || u.arena.handle(u.current) != c.self {
		panic(fault("context used while its thread is not running"))
	}
}

func (u *Universe) logf(format string, args ...any) {
	u.log.WriteLineString("kernel: " + fmt.Sprintf(format, args...))
}
