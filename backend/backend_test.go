package backend

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOS_SpawnRunsEntryOnAnotherThread(t *testing.T) {
	b := NewOS()

	entered := make(chan struct{})
	release := make(chan struct{})
	h, err := b.Spawn(func() {
		close(entered)
		<-release
	})
	require.NoError(t, err)

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("entry did not start")
	}

	// The entry is still blocked, so Spawn cannot have run it inline.
	close(release)
	require.NoError(t, b.Wait(h))
}

func TestOS_WaitBlocksUntilTermination(t *testing.T) {
	b := NewOS()

	var done atomic.Bool
	h, err := b.Spawn(func() {
		time.Sleep(30 * time.Millisecond)
		done.Store(true)
	})
	require.NoError(t, err)

	require.NoError(t, b.Wait(h))
	require.True(t, done.Load(), "Wait must not return before the entry finished")
}

func TestOS_NilEntry(t *testing.T) {
	_, err := NewOS().Spawn(nil)
	require.ErrorIs(t, err, ErrNilEntry)
}

func TestOS_ForeignHandle(t *testing.T) {
	require.ErrorIs(t, NewOS().Wait(seqHandle{}), ErrForeignHandle)
}

func TestSequential_SpawnRunsInline(t *testing.T) {
	b := NewSequential()

	ran := false
	h, err := b.Spawn(func() { ran = true })
	require.NoError(t, err)
	require.True(t, ran, "sequential spawn completes the work before returning")

	require.NoError(t, b.Wait(h))
	require.Zero(t, h.ThreadID())
}

func TestSequential_NilEntry(t *testing.T) {
	_, err := NewSequential().Spawn(nil)
	require.ErrorIs(t, err, ErrNilEntry)
}

func TestSequential_ForeignHandle(t *testing.T) {
	require.ErrorIs(t, NewSequential().Wait(&osHandle{}), ErrForeignHandle)
}
