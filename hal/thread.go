package hal

import "runtime"

// LockOSThread wires the calling goroutine to its own OS thread until the
// returned function is called.
func LockOSThread() (unlock func()) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
