package itk

import "fmt"

// SetMultipleMethod registers a distinct function and data value for thread
// index i. All indices that a subsequent MultipleMethodExecute round covers
// must be set. Multiple-method state is stored separately from the
// single-method slots; the two entry points never share records.
func (m *MultiThreader) SetMultipleMethod(i int, fn ThreadFunc, data any) error {
	if i < 0 || i >= MaxThreads {
		return fmt.Errorf("%w: %d", ErrInvalidThreadID, i)
	}
	m.roundMu.Lock()
	defer m.roundMu.Unlock()
	m.multiFns[i] = fn
	m.multiData[i] = data
	return nil
}

// MultipleMethodExecute runs one dispatch round in which each thread index
// executes its own registered function. Thread-count clamping, spawning,
// joining, and failure aggregation follow the same rules as
// SingleMethodExecute.
func (m *MultiThreader) MultipleMethodExecute() error {
	m.roundMu.Lock()
	defer m.roundMu.Unlock()

	n := m.clampedThreadCount()
	for i := 0; i < n; i++ {
		if m.multiFns[i] == nil {
			return fmt.Errorf("%w: index %d", ErrNoMultipleMethod, i)
		}
	}

	m.multi.reset()
	for i := 0; i < n; i++ {
		m.multi.configure(i, m.multiFns[i], m.multiData[i], n)
	}
	return m.executeRound(m.multi, n)
}
