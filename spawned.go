package itk

import (
	"fmt"
	"sync"

	"github.com/eapache/queue"

	"github.com/Dr-G/ITK/backend"
)

// spawnedSet tracks the persistently spawned threads of one MultiThreader.
// Slot ids are recycled through a FIFO free-list, so a terminated id is not
// handed out again until all other free ids have been used.
type spawnedSet struct {
	mu    sync.Mutex
	slots [MaxThreads]spawnedThread
	free  *queue.Queue
}

type spawnedThread struct {
	slot   threadSlot
	handle backend.Handle
	inUse  bool

	// terminating marks a slot whose join is in flight. It keeps a second
	// concurrent TerminateThread from re-joining the handle and double-freeing
	// the id while the first caller holds no lock during Wait.
	terminating bool
}

// SpawnThread starts fn on its own thread, outside any dispatch round, and
// returns an id for a later TerminateThread. The function receives a
// ThreadInfo whose Active method reflects the cooperative-cancellation flag:
// it returns true until TerminateThread is called, and the function is
// expected to poll it and return once it turns false.
//
// SpawnThread requires a real-threading backend. With the sequential
// fallback the entry runs to completion inside Spawn, so a function polling
// Active would never observe a cleared flag and SpawnThread would not
// return.
func (m *MultiThreader) SpawnThread(fn ThreadFunc, data any) (int, error) {
	if fn == nil {
		return -1, fmt.Errorf("%w: nil thread function", ErrSpawnFailed)
	}

	m.spawned.mu.Lock()
	defer m.spawned.mu.Unlock()

	if m.spawned.free.Length() == 0 {
		return -1, ErrNoFreeSlot
	}
	id := m.spawned.free.Remove().(int)

	st := &m.spawned.slots[id]
	st.slot.fn = fn
	st.slot.info.ThreadID = id
	st.slot.info.NumberOfThreads = 1
	st.slot.info.UserData = data
	st.slot.info.flag = &activeFlag{active: true}
	st.slot.outcome = outcomePending
	st.slot.err = nil

	h, err := m.cfg.Backend.Spawn(func() { supervise(&st.slot) })
	if err != nil {
		m.spawned.free.Add(id)
		return -1, fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}
	st.handle = h
	st.inUse = true
	m.activeThreads.Add(1)
	return id, nil
}

// TerminateThread clears the thread's active flag, waits for it to return,
// and releases its slot for reuse. It returns the failure the thread
// recorded, if any. A thread function that ignores its flag is waited on to
// natural completion. When several callers terminate the same id, exactly
// one performs the join; the others fail with ErrInvalidThreadID.
func (m *MultiThreader) TerminateThread(id int) error {
	m.spawned.mu.Lock()
	if id < 0 || id >= MaxThreads || !m.spawned.slots[id].inUse || m.spawned.slots[id].terminating {
		m.spawned.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrInvalidThreadID, id)
	}
	st := &m.spawned.slots[id]
	st.terminating = true
	st.slot.info.flag.clear()
	// Release the set lock while joining so other threads can be spawned or
	// terminated concurrently; the terminating mark keeps the slot claimed
	// until it is freed below.
	m.spawned.mu.Unlock()

	waitErr := m.cfg.Backend.Wait(st.handle)
	m.activeThreads.Add(-1)

	runErr := st.slot.err

	m.spawned.mu.Lock()
	st.inUse = false
	st.terminating = false
	st.handle = nil
	m.spawned.free.Add(id)
	m.spawned.mu.Unlock()

	if waitErr != nil {
		return fmt.Errorf("%w: %w", ErrSpawnFailed, waitErr)
	}
	return runErr
}
