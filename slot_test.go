package itk

import (
	"errors"
	"testing"
)

func TestSlotRegistry_ConfigureAndReset(t *testing.T) {
	r := newSlotRegistry()

	fn := func(*ThreadInfo) error { return nil }
	r.configure(2, fn, "payload", 5)

	s := r.slot(2)
	if s.fn == nil {
		t.Fatal("configure did not store the function")
	}
	if s.info.ThreadID != 2 {
		t.Fatalf("unexpected thread id: got=%d want=2", s.info.ThreadID)
	}
	if s.info.NumberOfThreads != 5 {
		t.Fatalf("unexpected thread count: got=%d want=5", s.info.NumberOfThreads)
	}
	if s.info.UserData != "payload" {
		t.Fatalf("unexpected user data: %v", s.info.UserData)
	}
	if s.outcome != outcomePending {
		t.Fatalf("freshly configured slot must be pending, got %d", s.outcome)
	}

	s.outcome = outcomeUserFailure
	s.err = errors.New("boom")
	r.reset()

	if s.outcome != outcomePending || s.err != nil {
		t.Fatal("reset did not clear outcome and diagnostics")
	}
	if s.fn != nil || s.info.UserData != nil || s.info.NumberOfThreads != 0 {
		t.Fatal("reset did not clear the configured triple")
	}
	if s.info.ThreadID != 2 {
		t.Fatal("reset must keep thread ids stable")
	}
}

func TestThreadInfo_ActiveWithoutFlag(t *testing.T) {
	info := &ThreadInfo{ThreadID: 1, NumberOfThreads: 4}
	if !info.Active() {
		t.Fatal("dispatch-round threads have no armed flag and must always be active")
	}
}

func TestActiveFlag_Clear(t *testing.T) {
	f := &activeFlag{active: true}
	if !f.get() {
		t.Fatal("flag must start active")
	}
	f.clear()
	if f.get() {
		t.Fatal("flag must be inactive after clear")
	}
}
