//go:build !linux && !windows

package backend

// currentThreadID is not available on this platform.
func currentThreadID() int { return 0 }
