// internal/worker/worker.go

// Package worker provides a generic concurrent task executor with an
// explicit lifecycle: submit inputs, seal the inlet, poll for outputs.
// Each task runs in its own goroutine; results are buffered until
// claimed, so producers and consumers never block each other.
package worker

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrSubmitAfterFinish is returned by Submit once FinishSubmitting
	// has been called.
	ErrSubmitAfterFinish = errors.New("worker: submit after finish")

	// ErrWorkerClosed is returned by Submit once the worker has shut down.
	ErrWorkerClosed = errors.New("worker: closed")
)

// idleInterval bounds how long the dispatcher sleeps between checks of
// the completion condition when no work arrives.
const idleInterval = 100 * time.Millisecond

// Processor transforms one input into one output. Failures are encoded
// in O itself (an error field or similar); the worker never inspects
// results. Processors run concurrently and must not panic.
type Processor[I, O any] func(I) O

// Worker executes tasks concurrently in submission order of dispatch,
// fire-and-forget. Both queues are unbounded: Submit never blocks on
// slow consumers and PollResults never blocks on slow producers. There
// is no back-pressure, so callers submitting vast batches get one
// goroutine per task in flight.
//
// A Worker is not reusable: once shut down, either explicitly or
// automatically after the last sealed task completes, it stays down.
type Worker[I, O any] struct {
	process Processor[I, O]

	mu     sync.Mutex
	inlet  []I
	outlet []O

	wake chan struct{}
	done chan struct{}

	pending   atomic.Int64
	completed atomic.Int64
	finished  atomic.Bool
	stopped   atomic.Bool
}

// New creates a worker and starts its dispatcher immediately.
func New[I, O any](process Processor[I, O]) *Worker[I, O] {
	w := &Worker[I, O]{
		process: process,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.dispatch()
	return w
}

// Submit enqueues one input for processing. It never blocks. After
// FinishSubmitting it fails with ErrSubmitAfterFinish; after shutdown
// with ErrWorkerClosed. On error the input is not enqueued and no
// counter moves.
func (w *Worker[I, O]) Submit(in I) error {
	if w.finished.Load() {
		return ErrSubmitAfterFinish
	}

	w.mu.Lock()
	if w.stopped.Load() {
		w.mu.Unlock()
		return ErrWorkerClosed
	}
	// Pending moves before the input is visible to the dispatcher, so
	// completed can never be observed above pending.
	w.pending.Add(1)
	w.inlet = append(w.inlet, in)
	w.mu.Unlock()

	w.notify()
	return nil
}

// FinishSubmitting seals the inlet. Queued and in-flight tasks are
// unaffected; further Submit calls fail. Idempotent.
func (w *Worker[I, O]) FinishSubmitting() {
	w.finished.Store(true)
	w.notify()
}

// PollResults drains every result currently buffered, in completion
// order, without blocking. Safe to call from any goroutine; a result is
// delivered to exactly one caller. Returns nil when nothing is ready.
func (w *Worker[I, O]) PollResults() []O {
	w.mu.Lock()
	out := w.outlet
	w.outlet = nil
	w.mu.Unlock()
	return out
}

// IsComplete reports whether the inlet is sealed and every submitted
// task has produced its result. A worker that never received a task
// never reports complete; callers that may legitimately submit nothing
// should check Pending instead. When IsComplete returns true all
// results are already buffered, so a final PollResults sees them.
func (w *Worker[I, O]) IsComplete() bool {
	if !w.finished.Load() {
		return false
	}
	p := w.pending.Load()
	return p > 0 && p == w.completed.Load()
}

// Pending returns how many tasks have been accepted so far.
func (w *Worker[I, O]) Pending() int64 {
	return w.pending.Load()
}

// Completed returns how many tasks have produced a result so far.
func (w *Worker[I, O]) Completed() int64 {
	return w.completed.Load()
}

// Done is closed when the dispatcher has exited, whether by Shutdown or
// automatically after a sealed inlet drained. Running tasks may outlive
// it.
func (w *Worker[I, O]) Done() <-chan struct{} {
	return w.done
}

// Shutdown stops the dispatcher. Queued-but-undispatched tasks are
// dropped; tasks already running are not joined, and their results may
// still show up in a later PollResults. Idempotent, returns without
// waiting.
func (w *Worker[I, O]) Shutdown() {
	if !w.stopped.CompareAndSwap(false, true) {
		return
	}
	w.notify()
}

func (w *Worker[I, O]) notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// dispatch is the single scheduling goroutine. It waits for a wake
// signal or the idle interval, launches every queued task, and once the
// inlet is sealed checks whether the last result has landed, at which
// point it marks the worker stopped and exits.
func (w *Worker[I, O]) dispatch() {
	defer close(w.done)

	for {
		select {
		case <-w.wake:
		case <-time.After(idleInterval):
		}

		if w.stopped.Load() {
			return
		}

		w.mu.Lock()
		batch := w.inlet
		w.inlet = nil
		w.mu.Unlock()

		for _, in := range batch {
			go w.run(in)
		}

		if w.finished.Load() && w.drained() {
			return
		}
	}
}

// drained decides auto-shutdown. It holds the lock so the decision
// serializes against Submit: either the racing input is already
// counted in pending here, or Submit observes stopped and rejects it.
func (w *Worker[I, O]) drained() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := w.pending.Load()
	if p == 0 || p != w.completed.Load() {
		return false
	}
	w.stopped.Store(true)
	return true
}

func (w *Worker[I, O]) run(in I) {
	out := w.process(in)

	// The result must be visible to pollers before completed moves,
	// otherwise IsComplete could report true with a result still in
	// flight.
	w.mu.Lock()
	w.outlet = append(w.outlet, out)
	w.mu.Unlock()
	w.completed.Add(1)
}
