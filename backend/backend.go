// Package backend provides the thread-creation strategies used by the
// dispatcher: real OS threads (NewOS) and a sequential fallback
// (NewSequential). Strategy selection happens once, at configuration time.
package backend

import "errors"

var (
	ErrNilEntry      = errors.New("backend: nil entry function")
	ErrForeignHandle = errors.New("backend: handle was not produced by this backend")
)

// Handle identifies one spawned thread for a later Wait. Handles are opaque
// to callers; ThreadID exposes the native thread id for diagnostics (0 when
// unknown or when the backend has no native threads).
type Handle interface {
	ThreadID() int
}

// Backend creates and joins threads running a given entry function.
//
// Spawn starts a thread that calls entry once and returns a handle for it.
// It never blocks beyond thread-creation cost. Wait blocks the calling
// goroutine until the referenced thread has terminated; it must be called
// exactly once per handle. The entry function is expected to contain its own
// failure handling: a panic escaping entry terminates the process.
type Backend interface {
	Spawn(entry func()) (Handle, error)
	Wait(h Handle) error
}
