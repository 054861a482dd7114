package kernel

import "spindle/green/list"

// Group multiplexes channels: its ready list holds the member channels that
// have sends not yet received, in the order they became ready.
type Group struct {
	ready *list.List[*Channel]
	count int
	freed bool
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{ready: list.New[*Channel]()}
}

// Len returns the number of member channels.
func (g *Group) Len() int { return g.count }

// Ready returns the number of members with pending events.
func (g *Group) Ready() int { return g.ready.Len() }

// Add makes ch a member. A channel belongs to at most one group. Messages
// already queued on ch are not reported as events.
func (g *Group) Add(ch *Channel) error {
	if g.freed {
		return ErrGroupFreed
	}
	if ch.group != nil {
		return ErrAlreadyGrouped
	}
	ch.group = g
	ch.grpEvents = 0
	g.count++
	return nil
}

// Remove drops ch from the group together with its pending events.
func (g *Group) Remove(ch *Channel) error {
	if ch.group != g {
		return ErrNotMember
	}
	g.ready.Remove(ch)
	ch.group = nil
	ch.grpEvents = 0
	g.count--
	return nil
}

// Free releases an empty group.
func (g *Group) Free() error {
	if g.freed {
		return ErrGroupFreed
	}
	if g.count > 0 {
		return ErrGroupNotEmpty
	}
	g.ready.Free()
	g.freed = true
	return nil
}

// Wait yields until a member has a pending event and returns that channel;
// the caller is expected to Recv from it next. A channel with more events
// than the coming Recv consumes goes back to the tail of the ready list.
func (c *Context) Wait(g *Group) *Channel {
	c.u.running(c)
	for {
		ch, ok := g.ready.Dequeue()
		if ok {
			if ch.grpEvents > 0 {
				g.ready.Enqueue(ch)
			}
			return ch
		}
		c.Yield(NoThread)
	}
}
