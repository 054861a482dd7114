//go:build !tinygo

package kernel

import "runtime"

// captureStack returns the calling goroutine's trace, growing the buffer
// until the trace fits.
func captureStack() []byte {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, 2*len(buf))
	}
}
