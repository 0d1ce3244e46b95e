//go:build windows

package backend

import "golang.org/x/sys/windows"

// currentThreadID returns the Windows thread id of the calling thread. Valid
// only while the goroutine is locked to its OS thread.
func currentThreadID() int {
	return int(windows.GetCurrentThreadId())
}
