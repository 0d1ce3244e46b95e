// Package itk provides a single-method thread dispatcher: one registered
// function is executed in parallel across a bounded set of OS threads, and
// the outcome of every thread is collected before the dispatching call
// returns.
//
// Constructors
//   - New(opts ...Option): options-based constructor. Unless overridden, a
//     new MultiThreader uses the OS-thread backend, the process-wide global
//     thread limit, and no metrics.
//
// Dispatch model
// A round is started with SingleMethodExecute after registering a function
// via SetSingleMethod. The requested thread count is clamped against the
// global maximum, threads 1..N-1 are spawned through the configured Backend,
// and slot 0 always runs on the calling goroutine. Every spawned thread is
// joined before the call returns, regardless of failures.
//
// Failure aggregation
// Per-thread failures never cross the thread boundary directly. Each is
// recorded into the thread's slot and re-raised exactly once from the
// dispatching goroutine as an error wrapping ErrExecutionFailed. When several
// threads fail, the retained message is the one observed last during the
// index-ascending wait loop (last-writer-wins; a documented simplification,
// not an accumulation). A function may return ErrProcessAborted (or an error
// wrapping it) to request cooperative abort: raised from slot 0, the
// dispatcher drains all spawned threads and then returns the abort error
// itself, skipping aggregation.
//
// Backends
//   - backend.NewOS(): every spawn runs on a dedicated OS thread
//     (runtime.LockOSThread). This is the default.
//   - backend.NewSequential(): no native threading; "spawned" work runs
//     inline on the calling goroutine. Callers must not assume true
//     parallelism is available.
//
// Global limit
// GetGlobalMaximumNumberOfThreads / SetGlobalMaximumNumberOfThreads control a
// process-wide ceiling consulted once per dispatch round. The default is the
// number of available CPUs. A per-instance GlobalLimit can be injected with
// WithGlobalLimit to keep a MultiThreader testable in isolation.
package itk
