package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/handoff/internal/config"
	"github.com/kubev2v/handoff/internal/metrics"
	"github.com/kubev2v/handoff/internal/models"
	srvErrors "github.com/kubev2v/handoff/pkg/errors"
	"github.com/kubev2v/handoff/pkg/primes"
	"github.com/kubev2v/handoff/pkg/scheduler"
)

// job is the invocation record travelling through the queues: the item and
// the handlers to run once it has been delivered.
type job struct {
	item     *models.WorkItem
	handlers []models.CompletionHandler
}

// checkBudget bounds the primality tests Submit spends on a substring other
// than the configured one.
const checkBudget = 1024

type Controller struct {
	pending    *scheduler.Queue[*job]
	finished   *scheduler.Queue[*job]
	worker     *scheduler.Worker[*job]
	dispatcher *scheduler.Dispatcher[*job]
	executor   *primes.Executor
	metrics    *metrics.Metrics
	history    *history
	contains   string
	containsOK bool

	// inflight holds a snapshot of every submitted item until it is delivered.
	// It and history are only updated together under mu.
	inflight  map[uuid.UUID]models.WorkItem
	delivered atomic.Uint64
	state     models.ControllerState
	mu        sync.Mutex
}

func NewController(workerCfg config.Worker, workCfg config.Work, m *metrics.Metrics) (*Controller, error) {
	c := &Controller{
		pending:  scheduler.NewQueue[*job](),
		finished: scheduler.NewQueue[*job](),
		executor: primes.NewExecutor(workCfg.MaxCandidate, workCfg.MaxAttempts, workCfg.Seed),
		metrics:  m,
		history:  newHistory(workerCfg.HistorySize),
		contains: workCfg.Contains,
		inflight: make(map[uuid.UUID]models.WorkItem),
		state:    models.ControllerStateStopped,
	}
	c.containsOK = primes.Satisfiable(workCfg.MaxCandidate, workCfg.Contains)
	if !c.containsOK {
		zap.S().Named("controller").Warnw("configured substring is unsatisfiable, default work will be refused",
			"max_candidate", workCfg.MaxCandidate, "contains", workCfg.Contains)
	}

	c.worker = scheduler.NewWorker(c.pending, c.finished, c.execute,
		scheduler.WithIdleBackOff[*job](backoff.NewConstantBackOff(workerCfg.PollInterval)),
		scheduler.WithObserver(c.observe),
	)
	c.dispatcher = scheduler.NewDispatcher(c.finished)

	if err := m.TrackQueue("pending", c.pending.Count); err != nil {
		return nil, fmt.Errorf("failed to register pending queue metric: %w", err)
	}
	if err := m.TrackQueue("finished", c.finished.Count); err != nil {
		return nil, fmt.Errorf("failed to register finished queue metric: %w", err)
	}

	return c, nil
}

// StartUp starts the worker. Items submitted before StartUp are picked up right away.
func (c *Controller) StartUp() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case models.ControllerStateRunning:
		return nil
	case models.ControllerStateShutDown:
		return srvErrors.NewWorkerStoppedError()
	}

	if err := c.worker.Start(); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	c.state = models.ControllerStateRunning

	zap.S().Named("controller").Infow("controller started", "pending", c.pending.Count())

	return nil
}

// ShutDown stops the worker and waits for the in-flight item, bounded by ctx.
// Pending items that were never started are dropped.
func (c *Controller) ShutDown(ctx context.Context) error {
	c.mu.Lock()
	if c.state == models.ControllerStateShutDown {
		c.mu.Unlock()
		return nil
	}
	c.state = models.ControllerStateShutDown
	c.worker.Stop()
	c.mu.Unlock()

	if err := c.worker.Wait(ctx); err != nil {
		zap.S().Named("controller").Warnw("worker still busy after shutdown deadline", "error", err)
		return fmt.Errorf("failed to stop worker: %w", err)
	}

	if dropped := c.pending.Drain(); len(dropped) > 0 {
		c.mu.Lock()
		for _, j := range dropped {
			delete(c.inflight, j.item.Handle)
		}
		c.mu.Unlock()
		zap.S().Named("controller").Warnw("dropped pending work on shutdown", "count", len(dropped))
	}

	zap.S().Named("controller").Infow("controller stopped", "completed", c.worker.Completed())

	return nil
}

// Submit queues item for execution. It never blocks. Handlers run once, from Tick,
// after the item has been computed.
func (c *Controller) Submit(item *models.WorkItem, handlers ...models.CompletionHandler) error {
	if item.Kind == models.WorkKindConstrained {
		if err := c.admit(item.Contains); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == models.ControllerStateShutDown {
		return srvErrors.NewWorkerStoppedError()
	}

	if item.Handle == uuid.Nil {
		item.Handle = uuid.New()
	}
	item.State = models.WorkStatePending
	if item.SubmittedAt.IsZero() {
		item.SubmittedAt = time.Now()
	}

	c.inflight[item.Handle] = *item
	c.pending.Push(&job{item: item, handlers: handlers})

	zap.S().Named("controller").Debugw("work submitted", "handle", item.Handle, "kind", item.Kind, "contains", item.Contains)

	return nil
}

// SubmitDefault submits a constrained item with the configured substring and
// logs its identifier once it completes.
func (c *Controller) SubmitDefault() (*models.WorkItem, error) {
	item := models.NewConstrainedWorkItem(c.contains)
	if err := c.Submit(item, LogIdentifier); err != nil {
		return nil, err
	}
	return item, nil
}

// Tick delivers every finished item to its handlers on the calling goroutine.
// It returns the number of items delivered.
func (c *Controller) Tick() int {
	return c.dispatcher.Drain(c.deliver)
}

func (c *Controller) Status() models.ControllerStatus {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	return models.ControllerStatus{
		State:     state,
		Pending:   c.pending.Count(),
		Finished:  c.finished.Count(),
		Completed: c.worker.Completed(),
		Delivered: c.delivered.Load(),
	}
}

// Lookup returns the latest snapshot of an item: pending or running while the
// worker has it, completed or failed once computed, and from history after
// delivery until it is evicted.
func (c *Controller) Lookup(handle uuid.UUID) (models.WorkItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.inflight[handle]; ok {
		return item, nil
	}
	if item, ok := c.history.get(handle); ok {
		return item, nil
	}

	return models.WorkItem{}, srvErrors.NewWorkNotFoundError(handle)
}

// execute runs on the worker goroutine.
func (c *Controller) execute(j *job) error {
	j.item.State = models.WorkStateRunning
	j.item.StartedAt = time.Now()
	c.track(j.item)
	return c.executor.Execute(j.item)
}

// track replaces the snapshot of an item still in flight.
func (c *Controller) track(item *models.WorkItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inflight[item.Handle]; ok {
		c.inflight[item.Handle] = *item
	}
}

// observe runs on the worker goroutine, before the job is published.
func (c *Controller) observe(o scheduler.Outcome[*job]) {
	item := o.Item.item
	item.FinishedAt = time.Now()
	if item.StartedAt.IsZero() {
		item.StartedAt = item.FinishedAt.Add(-o.Duration)
	}

	c.metrics.ObserveWork(string(item.Kind), o.Duration, o.Err)
	defer c.track(item)

	if o.Err != nil {
		item.State = models.WorkStateFailed
		item.Err = o.Err
		zap.S().Named("controller").Errorw("work failed",
			"handle", item.Handle,
			"kind", item.Kind,
			"contains", item.Contains,
			"input", item.Input,
			"attempts", item.Attempts,
			"error", o.Err)
		return
	}

	item.State = models.WorkStateCompleted
	zap.S().Named("controller").Debugw("work completed",
		"handle", item.Handle,
		"identifier", item.Identifier,
		"attempts", item.Attempts,
		"duration", o.Duration)
}

// deliver runs on the Tick goroutine.
func (c *Controller) deliver(j *job) {
	c.mu.Lock()
	c.history.add(*j.item)
	delete(c.inflight, j.item.Handle)
	c.mu.Unlock()

	c.delivered.Add(1)
	c.metrics.Delivered.Inc()

	for _, h := range j.handlers {
		h(j.item)
	}
}

// admit refuses constrained work the worker could never finish. The configured
// substring was checked in full by NewController; any other one gets a check
// bounded by checkBudget. When that check is inconclusive the item is accepted
// only if the attempt ceiling guarantees the search ends.
func (c *Controller) admit(contains string) error {
	maxCandidate := c.executor.MaxCandidate()

	var verdict primes.Verdict
	if contains == c.contains {
		verdict = primes.Unsatisfied
		if c.containsOK {
			verdict = primes.Satisfied
		}
	} else {
		verdict = primes.Check(maxCandidate, contains, checkBudget)
	}

	switch verdict {
	case primes.Satisfied:
		return nil
	case primes.Unknown:
		if c.executor.MaxAttempts() > 0 {
			return nil
		}
		return srvErrors.NewUnverifiableWorkError(maxCandidate, contains)
	default:
		return srvErrors.NewUnsatisfiableWorkError(maxCandidate, contains)
	}
}

// LogIdentifier is the diagnostic completion handler: it logs the identifier alone.
func LogIdentifier(item *models.WorkItem) {
	if item.Err != nil {
		zap.S().Named("diagnostic").Errorw("work failed", "handle", item.Handle, "input", item.Input, "error", item.Err)
		return
	}
	zap.S().Named("diagnostic").Info(item.Identifier)
}
