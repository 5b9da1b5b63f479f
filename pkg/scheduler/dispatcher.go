package scheduler

import "go.uber.org/zap"

// Dispatcher hands finished items to a callback on the caller's goroutine.
type Dispatcher[T any] struct {
	finished *Queue[T]
}

func NewDispatcher[T any](finished *Queue[T]) *Dispatcher[T] {
	return &Dispatcher[T]{finished: finished}
}

// Drain pops finished items until the queue is empty and calls fn for each,
// in the order they were finished. It returns the number of items dispatched.
func (d *Dispatcher[T]) Drain(fn func(T)) int {
	n := 0
	for {
		item, ok := d.finished.TryPop()
		if !ok {
			return n
		}
		d.dispatch(item, fn)
		n++
	}
}

func (d *Dispatcher[T]) dispatch(item T, fn func(T)) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("dispatcher").Errorw("completion callback panicked", "panic", rec)
		}
	}()
	fn(item)
}
