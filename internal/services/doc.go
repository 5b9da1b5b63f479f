// Package services implements the work handoff layer for handoff.
//
// The Controller is the only entry point callers need: it accepts work items,
// runs them on a single background worker and hands the results back on the
// goroutine that calls Tick. Host wraps a Controller in a fixed-rate tick loop
// for processes that have no frame loop of their own.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)      cmd/handoff run
//	    │                               │
//	    ▼                               ▼
//	Controller ◄─────────────────── Host (ticker)
//	    ├── scheduler.Queue   (pending, finished)
//	    ├── scheduler.Worker  ──► primes.Executor
//	    ├── scheduler.Dispatcher
//	    ├── metrics.Metrics
//	    └── history           (recently delivered items)
//
// # Item Lifecycle
//
//	Submit ──► pending ──► worker executes ──► finished ──► Tick ──► handlers
//	  │                                                       │
//	  └─ handle assigned, state "pending"                     └─ copied into history
//
// States seen by Lookup:
//   - pending: submitted, not delivered yet (queued or computing)
//   - completed: delivered with Identifier set
//   - failed: delivered with Err set (attempt ceiling or a recovered panic)
//
// # Controller States
//
//	┌─────────┐  StartUp  ┌─────────┐  ShutDown  ┌───────────┐
//	│ stopped │──────────►│ running │───────────►│ shut_down │
//	└─────────┘           └─────────┘            └───────────┘
//	     │                                             ▲
//	     └────────────────── ShutDown ─────────────────┘
//
// Submit is accepted while stopped (items wait for StartUp) and while running.
// After ShutDown it returns WorkerStoppedError. ShutDown waits for the in-flight
// item and drops items that never started; they are never delivered.
//
// # Threading
//
//   - Submit, Status and Lookup are safe from any goroutine.
//   - Handlers only ever run inside Tick, one item at a time, in completion order.
//   - The worker goroutine writes an item's result fields before publishing it,
//     and nothing touches the item on the worker side afterwards.
//
// # Constrained Items
//
// Submit checks that at least one prime below the configured maximum contains
// the requested substring and rejects the item otherwise. Results are cached per
// substring, so the scan runs once.
//
// # Usage
//
//	ctrl, err := services.NewController(cfg.Worker, cfg.Work, metrics.NewMetrics())
//	if err != nil {
//	    return err
//	}
//
//	host := services.NewHost(ctrl, cfg.Worker.TickInterval, cfg.Worker.ShutdownTimeout)
//	go host.Run(ctx)
//
//	_, err = ctrl.SubmitDefault()
package services
