//go:build linux

package backend

import "golang.org/x/sys/unix"

// currentThreadID returns the kernel task id of the calling thread. Valid
// only while the goroutine is locked to its OS thread.
func currentThreadID() int {
	return unix.Gettid()
}
