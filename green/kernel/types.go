package kernel

import "errors"

// State is a green thread's lifecycle state.
type State uint8

const (
	Runnable State = iota
	Blocked
	Dead
	// Waiting is Blocked on a join.
	Waiting
)

func (s State) String() string {
	switch s {
	case Runnable:
		return "runnable"
	case Blocked:
		return "blocked"
	case Dead:
		return "dead"
	case Waiting:
		return "waiting"
	default:
		return "unknown"
	}
}

// Queue selects one of a universe's lifecycle queues for Info.
type Queue uint8

const (
	QueueRunnable Queue = iota
	QueueBlocked
	QueueZombies
)

func (q Queue) String() string {
	switch q {
	case QueueRunnable:
		return "runnable"
	case QueueBlocked:
		return "blocked"
	case QueueZombies:
		return "zombies"
	default:
		return "unknown"
	}
}

// Flags configure a thread at creation.
type Flags struct {
	// NoJoin marks a thread nobody will join. It is reclaimed by the garbage
	// collection pass of a later thread death.
	NoJoin bool
}

// Entry is the body of a green thread. Its result becomes the thread's
// return value.
type Entry func(ctx *Context, arg any, ch *Channel) any

// Handle names a thread within its universe.
//
// Handles are generation checked: once a thread is reclaimed every handle to
// it goes stale, even if its slot is reused.
type Handle struct {
	idx int32
	gen uint32
}

// NoThread is the zero Handle. Yield(NoThread) lets the scheduler pick.
var NoThread Handle

// Valid reports whether h was ever issued. A valid handle may still be stale.
func (h Handle) Valid() bool { return h.gen != 0 }

var (
	ErrNotParent      = errors.New("kernel: caller is not the thread's parent")
	ErrNoJoin         = errors.New("kernel: thread is not joinable")
	ErrStaleHandle    = errors.New("kernel: stale thread handle")
	ErrNilPayload     = errors.New("kernel: nil payload")
	ErrReceiverGone   = errors.New("kernel: receiver gone")
	ErrChannelFreed   = errors.New("kernel: channel freed")
	ErrAlreadyGrouped = errors.New("kernel: channel already in a group")
	ErrNotMember      = errors.New("kernel: channel not in this group")
	ErrGroupNotEmpty  = errors.New("kernel: group has members")
	ErrGroupFreed     = errors.New("kernel: group freed")
	ErrNilEntry       = errors.New("kernel: nil entry")
)

// fault is raised for misuse that would corrupt a universe. The trampoline
// never converts it into a thread death.
type fault string

func (f fault) Error() string { return "kernel: " + string(f) }
