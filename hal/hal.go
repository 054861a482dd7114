package hal

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Context is the saved execution state of one green thread.
//
// It is opaque to everything but the Switcher that created it.
type Context interface{}

// Switcher is the context-switch primitive a scheduler universe runs on.
//
// Exactly one context per switcher runs at any instant. A switch hands the
// processor to next and parks old until some later switch resumes it.
type Switcher interface {
	// Current returns a context for the calling flow of control. It is used
	// once per universe to adopt the root thread.
	Current() Context

	// New prepares a context that runs start on its first dispatch. start
	// must leave through Exit; returning from it strands the universe.
	New(start func()) Context

	// Switch resumes next and parks old until it is resumed in turn.
	// Switching to the running context is a no-op.
	Switch(next, old Context)

	// Exit resumes next and never returns. The calling context is dropped.
	Exit(next Context)
}
