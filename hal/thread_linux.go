//go:build linux

package hal

import "golang.org/x/sys/unix"

// OSThreadID returns the kernel id of the calling OS thread.
func OSThreadID() int { return unix.Gettid() }
