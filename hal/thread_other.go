//go:build !linux

package hal

// OSThreadID returns 0 where the platform has no cheap thread id.
func OSThreadID() int { return 0 }
