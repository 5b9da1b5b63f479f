// Package scheduler implements a single-worker handoff pipeline.
//
// Work moves through two FIFO queues. Producers push onto the pending queue,
// one background Worker executes items one at a time and pushes them onto the
// finished queue, and a Dispatcher running on the consumer's goroutine drains
// the finished queue and hands each item to a callback.
//
// # Architecture Overview
//
//	 producer goroutines          worker goroutine             consumer goroutine
//	┌───────────────────┐      ┌─────────────────────┐      ┌─────────────────────┐
//	│                   │      │       Worker        │      │     Dispatcher      │
//	│   Push(item) ─────┼──┐   │                     │   ┌──┼──► Drain(fn)        │
//	│                   │  │   │  TryPop ─► work ─┐  │   │  │      │              │
//	└───────────────────┘  │   └────▲─────────────┼──┘   │  │      ▼              │
//	                       │        │             │      │  │   fn(item)          │
//	                       ▼        │             ▼      │  └─────────────────────┘
//	              ┌─────────────────┴┐     ┌─────────────┴────┐
//	              │  Pending Queue   │     │  Finished Queue  │
//	              │  [i1] [i2] ...   │     │  [i0] ...        │
//	              └──────────────────┘     └──────────────────┘
//
// # Core Components
//
// Queue:
//   - Generic slice-backed FIFO guarded by a mutex
//   - Push never blocks or fails, TryPop never blocks
//   - Count is a snapshot, only suitable for existence checks
//
// Worker:
//   - Owns exactly one goroutine; at most one item is in flight
//   - Polls the pending queue and idles with a backoff.BackOff when it is empty
//     (a 1ms constant backoff by default)
//   - Recovers from panics in the work function and reports them as
//     *errors.WorkPanicError; the faulted item still reaches the finished queue
//
// Dispatcher:
//   - Drains the whole finished queue in one call
//   - Calls the callback synchronously on the caller's goroutine, FIFO
//   - Recovers and logs panics raised by the callback
//
// # Worker Lifecycle
//
//	┌──────┐   Start()   ┌─────────┐   Stop()   ┌─────────┐
//	│ Idle │ ──────────► │ Running │ ─────────► │ Stopped │ (terminal)
//	└──────┘             └─────────┘            └─────────┘
//	    │                                            ▲
//	    └──────────────────── Stop() ────────────────┘
//
// Start on a stopped worker returns *errors.WorkerStoppedError.
//
// # Worker Loop
//
//	for running {
//	    item, ok := pending.TryPop()
//	    if !ok {
//	        sleep(idle.NextBackOff())
//	        continue
//	    }
//	    err := work(item)          // panics recovered
//	    completed++
//	    observe(Outcome{item, err, duration})
//	    finished.Push(item)
//	}
//
// # Ownership
//
// An item is owned by the producer until it is pushed, by the worker from the
// moment it is popped from pending until it is pushed to finished, and by the
// consumer after it is popped from finished. The observer runs on the worker
// goroutine before the push, so it may still mutate the item.
//
// # Graceful Shutdown
//
// Stop clears the running flag. The loop checks the flag at the top of every
// iteration, so it exits within one idle interval when idle and right after the
// in-flight item otherwise. Nothing aborts a running work function: an item that
// never returns keeps the worker alive. Callers bound the wait with a context:
//
//	w.Stop()
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	if err := w.Wait(ctx); err != nil {
//	    // worker still busy with a long item
//	}
//
// Items still in the pending queue after Stop are never started.
//
// # Usage Example
//
//	pending := scheduler.NewQueue[*Job]()
//	finished := scheduler.NewQueue[*Job]()
//
//	w := scheduler.NewWorker(pending, finished, func(j *Job) error {
//	    return j.Run()
//	})
//	if err := w.Start(); err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	pending.Push(job)
//
//	d := scheduler.NewDispatcher(finished)
//	for range ticker.C {
//	    d.Drain(func(j *Job) { j.Notify() })
//	}
package scheduler
