package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/handoff/pkg/errors"
)

const DefaultPollInterval = time.Millisecond

type workerState int

const (
	workerIdle workerState = iota
	workerRunning
	workerStopped
)

type Option[T any] func(w *Worker[T])

// WithIdleBackOff sets the wait used when the pending queue is empty.
func WithIdleBackOff[T any](b backoff.BackOff) Option[T] {
	return func(w *Worker[T]) {
		w.idle = b
	}
}

// WithObserver registers fn to be called on the worker goroutine after
// every item, whether it succeeded or not.
func WithObserver[T any](fn func(Outcome[T])) Option[T] {
	return func(w *Worker[T]) {
		w.observe = fn
	}
}

// Worker executes items from pending one at a time on a single goroutine
// and publishes them to finished.
type Worker[T any] struct {
	pending   *Queue[T]
	finished  *Queue[T]
	work      Work[T]
	idle      backoff.BackOff
	observe   func(Outcome[T])
	running   atomic.Bool
	completed atomic.Uint64
	done      chan struct{}
	state     workerState
	mu        sync.Mutex
}

func NewWorker[T any](pending, finished *Queue[T], work Work[T], opts ...Option[T]) *Worker[T] {
	w := &Worker[T]{
		pending:  pending,
		finished: finished,
		work:     work,
		idle:     backoff.NewConstantBackOff(DefaultPollInterval),
		done:     make(chan struct{}),
		state:    workerIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the worker goroutine. Calling Start on a running worker is a no-op.
// A stopped worker cannot be restarted.
func (w *Worker[T]) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case workerRunning:
		return nil
	case workerStopped:
		return srvErrors.NewWorkerStoppedError()
	}

	w.state = workerRunning
	w.running.Store(true)
	go w.run()

	return nil
}

// Stop asks the loop to exit. The item in flight, if any, runs to completion.
// Stop does not wait; use Wait or Done for that.
func (w *Worker[T]) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case workerStopped:
		return
	case workerIdle:
		// never started, nothing will close done
		close(w.done)
	}

	w.state = workerStopped
	w.running.Store(false)
}

// Wait blocks until the worker goroutine has exited or ctx is done.
func (w *Worker[T]) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker[T]) Done() <-chan struct{} {
	return w.done
}

func (w *Worker[T]) Running() bool {
	return w.running.Load()
}

// Completed returns the number of items executed so far.
func (w *Worker[T]) Completed() uint64 {
	return w.completed.Load()
}

func (w *Worker[T]) run() {
	defer close(w.done)

	zap.S().Named("worker").Debug("worker started")
	defer zap.S().Named("worker").Debug("worker stopped")

	w.idle.Reset()
	for w.running.Load() {
		item, ok := w.pending.TryPop()
		if !ok {
			w.wait()
			continue
		}

		w.idle.Reset()
		w.execute(item)
	}
}

func (w *Worker[T]) wait() {
	d := w.idle.NextBackOff()
	if d == backoff.Stop {
		w.idle.Reset()
		d = w.idle.NextBackOff()
	}
	if d < 0 {
		d = DefaultPollInterval
	}
	time.Sleep(d)
}

func (w *Worker[T]) execute(item T) {
	start := time.Now()
	err := w.safeWork(item)

	w.completed.Add(1)
	if w.observe != nil {
		w.observe(Outcome[T]{Item: item, Err: err, Duration: time.Since(start)})
	}

	// ownership of item passes to the consumer from here on
	w.finished.Push(item)
}

func (w *Worker[T]) safeWork(item T) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = srvErrors.NewWorkPanicError(rec)
		}
	}()
	return w.work(item)
}
