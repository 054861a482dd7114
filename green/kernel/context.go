package kernel

// Context is a running thread's access to its universe. Every operation
// acts on behalf of that thread and may only be called while it runs.
type Context struct {
	u    *Universe
	self Handle
}

// Universe returns the universe the thread belongs to.
func (c *Context) Universe() *Universe { return c.u }

// Current returns the handle of the calling thread.
func (c *Context) Current() Handle { return c.self }

// ID returns the identifier of thread h.
func (c *Context) ID(h Handle) (uint64, error) { return c.u.ID(h) }

// Info counts the threads in queue q.
func (c *Context) Info(q Queue) int { return c.u.Info(q) }

// Create starts a thread running entry(ctx, arg, ch) and queues it at the
// runnable tail. When entry returns, the thread dies with its result.
func (c *Context) Create(entry Entry, arg any, flags Flags, ch *Channel) Handle {
	u := c.u
	u.running(c)
	if entry == nil {
		panic(fault("create with nil entry"))
	}

	idx := u.arena.alloc()
	t := u.arena.threads[idx]
	t.id = u.nextID
	u.nextID++
	t.state = Runnable
	t.flags = flags
	t.parent = c.self
	t.owner = u.owner

	child := &Context{u: u, self: u.arena.handle(idx)}
	t.ctx = u.sw.New(func() { child.start(entry, arg, ch) })
	u.runq.pushTail(&u.arena, idx)
	return child.self
}

// Yield lets another runnable thread run. target is accepted for directed
// yields but the scheduler currently always picks the next thread in order.
func (c *Context) Yield(target Handle) {
	c.u.running(c)
	_ = target
	c.u.schedule()
}

// Join waits for child h to die, reclaims it and returns its value.
//
// Only the parent may join, and never a NoJoin thread. A handle is joinable
// once; later joins report ErrStaleHandle.
func (c *Context) Join(h Handle) (any, error) {
	u := c.u
	u.running(c)
	for {
		t, ok := u.arena.lookup(h)
		if !ok {
			return nil, ErrStaleHandle
		}
		if t.parent != c.self {
			return nil, ErrNotParent
		}
		if t.flags.NoJoin {
			return nil, ErrNoJoin
		}
		if t.state == Dead {
			v := t.ret
			u.deadq.unlink(&u.arena, h.idx)
			u.arena.release(h.idx)
			return v, nil
		}

		// Woken by any child's death; recheck.
		u.arena.threads[c.self.idx].state = Waiting
		u.schedule()
	}
}

// Die ends the calling thread with value v. It never returns.
//
// The thread's stack unwinds first, so deferred calls in its entry run while
// it still owns the universe.
func (c *Context) Die(v any) {
	u := c.u
	u.running(c)
	if !u.arena.threads[c.self.idx].parent.Valid() {
		panic(fault("root thread cannot die"))
	}
	panic(dieSignal{v: v})
}

// dieSignal carries an explicit Die up to the trampoline.
type dieSignal struct{ v any }

// start is the trampoline every created thread begins in.
func (c *Context) start(entry Entry, arg any, ch *Channel) {
	c.exit(c.run(entry, arg, ch))
}

// exit runs on an unwound stack: gc, wake a waiting parent, go dead and
// switch away for good.
func (c *Context) exit(v any) {
	u := c.u
	u.running(c)
	t := u.arena.threads[c.self.idx]

	u.collect()

	if !t.flags.NoJoin {
		if p, ok := u.arena.lookup(t.parent); ok && p.state == Waiting {
			u.wake(t.parent.idx)
		}
	}

	t.ret = v
	t.state = Dead
	u.schedule()
	panic(fault("dead thread resumed"))
}

func (c *Context) run(entry Entry, arg any, ch *Channel) (ret any) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch r := r.(type) {
		case dieSignal:
			ret = r.v
			return
		case fault:
			panic(r)
		}
		t := c.u.arena.threads[c.self.idx]
		info := &PanicInfo{ThreadID: t.id, Owner: t.owner, Value: r}
		triggerPanic(info)
		c.u.logf("thread %d panicked: %v", t.id, r)
		ret = info
	}()
	return entry(c, arg, ch)
}
