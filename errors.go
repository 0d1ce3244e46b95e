package itk

import "errors"

const Namespace = "itk"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")

	// ErrNoSingleMethod is returned by SingleMethodExecute when no function
	// was registered via SetSingleMethod. No threads are spawned.
	ErrNoSingleMethod = errors.New(Namespace + ": no single method set")

	// ErrNoMultipleMethod is returned by MultipleMethodExecute when a method
	// is missing for one of the thread indices in use.
	ErrNoMultipleMethod = errors.New(Namespace + ": multiple method not set for every thread")

	// ErrExecutionFailed wraps the last failure observed during a dispatch
	// round. Use errors.Is to detect it and errors.Unwrap to reach the
	// underlying thread failure.
	ErrExecutionFailed = errors.New(Namespace + ": exception occurred during execution")

	// ErrProcessAborted is the distinguished cooperative-abort condition.
	// Thread functions return it (or wrap it) to request an abort; see the
	// package documentation for the slot-0 drain-then-rethrow semantics.
	ErrProcessAborted = errors.New(Namespace + ": process aborted")

	// ErrThreadPanicked wraps a panic recovered at the supervisor boundary.
	ErrThreadPanicked = errors.New(Namespace + ": thread function panicked")

	// ErrSpawnFailed wraps a Backend refusal to create a native thread.
	ErrSpawnFailed = errors.New(Namespace + ": thread creation failed")

	// ErrNoFreeSlot is returned by SpawnThread when all spawned-thread slots
	// are occupied.
	ErrNoFreeSlot = errors.New(Namespace + ": no spawned thread slot available")

	// ErrInvalidThreadID reports a thread index outside the valid range.
	ErrInvalidThreadID = errors.New(Namespace + ": thread index out of range")
)
