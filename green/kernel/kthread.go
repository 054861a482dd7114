package kernel

import (
	"context"
	"fmt"
	"sync/atomic"

	"spindle/hal"

	"github.com/google/uuid"
)

// Anchor is an OS thread hosting its own universe, rooted at one green
// thread.
type Anchor struct {
	id    uuid.UUID
	alive atomic.Bool
	done  chan struct{}

	// Written by the anchor before done is closed.
	ret any
	err error
}

// SpawnKthread starts a detached OS thread with a fresh universe and runs
// entry(ctx, arg, ch) as that universe's first green thread. The anchor
// stays alive until the green thread dies.
//
// ch is passed through untouched. Using it from both universes needs
// synchronization this package does not provide.
func SpawnKthread(entry Entry, arg any, ch *Channel, opts ...Option) (*Anchor, error) {
	if entry == nil {
		return nil, ErrNilEntry
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("kernel: anchor id: %w", err)
	}

	a := &Anchor{id: id, done: make(chan struct{})}
	all := make([]Option, 0, len(opts)+1)
	all = append(append(all, opts...), WithOwner(id))
	u := New(all...)
	a.alive.Store(true)
	go a.run(u, entry, arg, ch)
	return a, nil
}

func (a *Anchor) run(u *Universe, entry Entry, arg any, ch *Channel) {
	unlock := hal.LockOSThread()
	defer unlock()
	defer close(a.done)

	root := u.Root()
	u.logf("anchor %s started on os thread %d", a.id, hal.OSThreadID())
	h := root.Create(entry, arg, Flags{}, ch)
	a.ret, a.err = root.Join(h)
	a.alive.Store(false)
	u.logf("anchor %s stopped", a.id)
}

// ID returns the anchor's identity, also reported by its universe's Owner.
func (a *Anchor) ID() uuid.UUID { return a.id }

// Alive reports whether the root green thread is still running.
func (a *Anchor) Alive() bool { return a.alive.Load() }

// Done is closed once the root green thread has been joined.
func (a *Anchor) Done() <-chan struct{} { return a.done }

// Wait blocks until the root green thread has died and returns its value.
func (a *Anchor) Wait(ctx context.Context) (any, error) {
	select {
	case <-a.done:
		return a.ret, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
