package itk

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultipleMethodExecute_EachIndexRunsItsOwnMethod(t *testing.T) {
	b := &stubBackend{}
	m := newTestThreader(t, 3, 8, b)

	var mu sync.Mutex
	got := map[int]any{}
	record := func(info *ThreadInfo) error {
		mu.Lock()
		got[info.ThreadID] = info.UserData
		mu.Unlock()
		return nil
	}

	require.NoError(t, m.SetMultipleMethod(0, record, "a"))
	require.NoError(t, m.SetMultipleMethod(1, record, "b"))
	require.NoError(t, m.SetMultipleMethod(2, record, "c"))

	require.NoError(t, m.MultipleMethodExecute())
	require.Equal(t, map[int]any{0: "a", 1: "b", 2: "c"}, got)

	spawns, waits := b.counts()
	require.Equal(t, 2, spawns)
	require.Equal(t, 2, waits)
}

func TestMultipleMethodExecute_MissingMethod(t *testing.T) {
	b := &stubBackend{}
	m := newTestThreader(t, 3, 8, b)

	noop := func(*ThreadInfo) error { return nil }
	require.NoError(t, m.SetMultipleMethod(0, noop, nil))
	require.NoError(t, m.SetMultipleMethod(2, noop, nil))

	err := m.MultipleMethodExecute()
	require.ErrorIs(t, err, ErrNoMultipleMethod)

	spawns, _ := b.counts()
	require.Zero(t, spawns, "validation happens before any spawn")
}

func TestSetMultipleMethod_IndexOutOfRange(t *testing.T) {
	m := newTestThreader(t, 3, 8, &stubBackend{})
	noop := func(*ThreadInfo) error { return nil }

	require.ErrorIs(t, m.SetMultipleMethod(-1, noop, nil), ErrInvalidThreadID)
	require.ErrorIs(t, m.SetMultipleMethod(MaxThreads, noop, nil), ErrInvalidThreadID)
}

func TestMultipleMethodExecute_DoesNotTouchSingleMethodSlots(t *testing.T) {
	b := &stubBackend{}
	m := newTestThreader(t, 2, 8, b)

	singleRan := 0
	m.SetSingleMethod(func(*ThreadInfo) error { singleRan++; return nil }, nil)

	noop := func(*ThreadInfo) error { return nil }
	require.NoError(t, m.SetMultipleMethod(0, noop, nil))
	require.NoError(t, m.SetMultipleMethod(1, noop, nil))
	require.NoError(t, m.MultipleMethodExecute())

	// The single-method registration survives a multiple-method round.
	require.NoError(t, m.SingleMethodExecute())
	require.Equal(t, 2, singleRan)
}
