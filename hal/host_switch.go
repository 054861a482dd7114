package hal

import "runtime"

// hostContext backs a green thread with a parked goroutine.
//
// The scheduler hands a single baton between goroutines through the resume
// channels, so only one goroutine per switcher makes progress and every
// switch is a happens-before edge for the universe state.
type hostContext struct {
	resume  chan struct{}
	start   func()
	started bool
}

type hostSwitcher struct{}

// NewHostSwitcher returns the goroutine-backed Switcher.
func NewHostSwitcher() Switcher {
	return hostSwitcher{}
}

func (hostSwitcher) Current() Context {
	return &hostContext{resume: make(chan struct{}), started: true}
}

func (hostSwitcher) New(start func()) Context {
	return &hostContext{resume: make(chan struct{}), start: start}
}

func (s hostSwitcher) Switch(next, old Context) {
	n, o := next.(*hostContext), old.(*hostContext)
	if n == o {
		return
	}
	s.wake(n)
	<-o.resume
}

func (s hostSwitcher) Exit(next Context) {
	s.wake(next.(*hostContext))
	runtime.Goexit()
}

func (hostSwitcher) wake(c *hostContext) {
	if !c.started {
		c.started = true
		start := c.start
		c.start = nil
		go start()
		return
	}
	c.resume <- struct{}{}
}
