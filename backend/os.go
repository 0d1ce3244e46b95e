package backend

import (
	"runtime"
	"sync/atomic"
)

// osThreads runs every spawned entry on a goroutine locked to its own OS
// thread. The thread is dedicated for the entry's lifetime and released when
// the entry returns.
type osThreads struct{}

// NewOS returns the OS-thread backend. This is the default strategy.
func NewOS() Backend { return osThreads{} }

type osHandle struct {
	done chan struct{}
	tid  atomic.Int64
}

// ThreadID returns the native thread id captured after the spawned thread
// started, or 0 if the thread has not reached its entry yet (or the platform
// does not expose thread ids).
func (h *osHandle) ThreadID() int { return int(h.tid.Load()) }

func (osThreads) Spawn(entry func()) (Handle, error) {
	if entry == nil {
		return nil, ErrNilEntry
	}
	h := &osHandle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		h.tid.Store(int64(currentThreadID()))
		entry()
	}()
	return h, nil
}

func (osThreads) Wait(h Handle) error {
	oh, ok := h.(*osHandle)
	if !ok {
		return ErrForeignHandle
	}
	<-oh.done
	return nil
}
