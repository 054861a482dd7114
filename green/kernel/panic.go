package kernel

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// PanicInfo is what a green thread dies with when its entry panics.
// Owner is the anchor hosting the thread's universe.
type PanicInfo struct {
	ThreadID uint64
	Owner    uuid.UUID
	Value    any
	Stack    []byte
}

var panics struct {
	seen atomic.Bool
	once sync.Once

	mu      sync.Mutex
	handler func(PanicInfo)
}

// SetPanicHandler installs fn as the process-wide panic handler; nil
// removes it. Only the first panic in the process reaches a handler, on the
// panicking thread, so fn must neither panic nor use that thread's universe.
func SetPanicHandler(fn func(PanicInfo)) {
	panics.mu.Lock()
	panics.handler = fn
	panics.mu.Unlock()
}

// InPanicMode reports whether any green thread has panicked.
func InPanicMode() bool { return panics.seen.Load() }

func triggerPanic(info *PanicInfo) {
	info.Stack = captureStack()
	panics.seen.Store(true)
	panics.once.Do(func() {
		panics.mu.Lock()
		fn := panics.handler
		panics.mu.Unlock()
		if fn != nil {
			fn(*info)
		}
	})
}
