package backend

// sequential is the fallback strategy for environments where true threading
// is undesirable: Spawn runs the entry inline on the calling goroutine and
// returns a sentinel handle whose Wait is a no-op, the work having already
// completed at spawn time.
type sequential struct{}

// NewSequential returns the sequential fallback backend.
func NewSequential() Backend { return sequential{} }

type seqHandle struct{}

func (seqHandle) ThreadID() int { return 0 }

func (sequential) Spawn(entry func()) (Handle, error) {
	if entry == nil {
		return nil, ErrNilEntry
	}
	entry()
	return seqHandle{}, nil
}

func (sequential) Wait(h Handle) error {
	if _, ok := h.(seqHandle); !ok {
		return ErrForeignHandle
	}
	return nil
}
