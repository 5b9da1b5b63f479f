package scheduler

import "time"

// Work runs a single item on the worker goroutine.
type Work[T any] func(item T) error

// Outcome is handed to the observer after each item, before the item
// is published to the finished queue.
type Outcome[T any] struct {
	Item     T
	Err      error
	Duration time.Duration
}
