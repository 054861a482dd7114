package kernel

import (
	"reflect"

	"spindle/green/ring"
)

// Channel is a bounded conduit with one receiver and any number of senders.
//
// The creator is the receiver and holds the first reference; every channel
// handed over with SendChannel/RecvChannel adds one. The channel is
// destroyed when the last reference is dropped with Deref.
//
// A channel belongs to the universe whose threads use it. Sharing one
// between universes needs synchronization this package does not provide.
type Channel struct {
	refs int

	group *Group
	// grpEvents counts sends not yet received since the channel joined its
	// group. It is zero whenever group is nil.
	grpEvents int

	msgs *ring.Ring[any]
	mark any
	slot *Channel

	rcvBlocked bool
	rcvU       *Universe
	receiver   Handle
}

// NewChannel creates a channel holding up to capacity messages with the
// calling thread as receiver.
func (c *Context) NewChannel(capacity int) *Channel {
	c.u.running(c)
	return &Channel{
		refs:     1,
		msgs:     ring.New[any](capacity),
		rcvU:     c.u,
		receiver: c.self,
	}
}

// Deref drops one reference. A receiver dropping its reference leaves the
// channel, after which sends fail with ErrReceiverGone.
func (c *Context) Deref(ch *Channel) error {
	c.u.running(c)
	if ch.refs == 0 {
		return ErrChannelFreed
	}
	if ch.isReceiver(c) {
		ch.receiver = NoThread
		ch.rcvU = nil
	}
	ch.refs--
	if ch.refs > 0 {
		return nil
	}
	if g := ch.group; g != nil {
		_ = g.Remove(ch)
	}
	ch.msgs.Delete()
	ch.mark = nil
	ch.slot = nil
	return nil
}

// Send queues payload, yielding while the channel is full. nil payloads,
// typed nil pointers, maps, slices, funcs and chans included, are rejected, and so is any send once the receiver has left.
func (c *Context) Send(ch *Channel, payload any) error {
	c.u.running(c)
	if isNil(payload) {
		return ErrNilPayload
	}
	if ch.refs == 0 {
		return ErrChannelFreed
	}
	if !ch.receiver.Valid() {
		return ErrReceiverGone
	}

	if g := ch.group; g != nil {
		if ch.grpEvents == 0 {
			g.ready.Enqueue(ch)
		}
		ch.grpEvents++
	}

	for !ch.msgs.TryPush(payload) {
		c.Yield(NoThread)
	}
	return nil
}

// Recv dequeues the next message, yielding until one arrives.
func (c *Context) Recv(ch *Channel) any {
	c.u.running(c)
	var v any
	for {
		var ok bool
		if v, ok = ch.msgs.TryPop(); ok {
			break
		}
		ch.rcvBlocked = true
		c.Yield(NoThread)
	}
	ch.rcvBlocked = false

	if g := ch.group; g != nil && ch.grpEvents > 0 {
		ch.grpEvents--
		if ch.grpEvents == 0 {
			g.ready.Remove(ch)
		}
	}
	return v
}

// SendChannel hands x to the receiver of ch and yields until it is taken.
func (c *Context) SendChannel(ch, x *Channel) {
	c.u.running(c)
	for ch.slot != nil {
		c.Yield(NoThread)
	}
	ch.slot = x
	for ch.slot == x {
		c.Yield(NoThread)
	}
}

// RecvChannel takes a channel handed over with SendChannel, yielding until
// one is offered. The caller gains a reference to it.
func (c *Context) RecvChannel(ch *Channel) *Channel {
	c.u.running(c)
	for ch.slot == nil {
		c.Yield(NoThread)
	}
	x := ch.slot
	ch.slot = nil
	x.refs++
	return x
}

// SetMark stores an arbitrary tag for the receiver's bookkeeping.
func (ch *Channel) SetMark(v any) { ch.mark = v }

// Mark returns the tag set with SetMark.
func (ch *Channel) Mark() any { return ch.mark }

// Refs returns the reference count.
func (ch *Channel) Refs() int { return ch.refs }

// Len returns the number of queued messages.
func (ch *Channel) Len() int { return ch.msgs.Len() }

// Cap returns the message capacity, 0 once destroyed.
func (ch *Channel) Cap() int { return ch.msgs.Cap() }

// Group returns the group the channel belongs to, if any.
func (ch *Channel) Group() *Group { return ch.group }

// Pending returns the group events not yet received.
func (ch *Channel) Pending() int { return ch.grpEvents }

// ReceiverBlocked reports whether the receiver is waiting in Recv.
func (ch *Channel) ReceiverBlocked() bool { return ch.rcvBlocked }

func (ch *Channel) isReceiver(c *Context) bool {
	return ch.rcvU == c.u && ch.receiver == c.self
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
