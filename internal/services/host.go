package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Host drives a Controller the way an application frame loop would: it starts
// the controller, calls Tick at a fixed interval and shuts it down when its
// context ends.
type Host struct {
	controller      *Controller
	tickInterval    time.Duration
	shutdownTimeout time.Duration
}

func NewHost(c *Controller, tickInterval, shutdownTimeout time.Duration) *Host {
	return &Host{
		controller:      c,
		tickInterval:    tickInterval,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run blocks until ctx is done. Items finished before shutdown are delivered
// by a last Tick.
func (h *Host) Run(ctx context.Context) error {
	if err := h.controller.StartUp(); err != nil {
		return err
	}

	ticker := time.NewTicker(h.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return h.shutdown()
		case <-ticker.C:
			h.controller.Tick()
		}
	}
}

func (h *Host) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()

	err := h.controller.ShutDown(ctx)
	if n := h.controller.Tick(); n > 0 {
		zap.S().Named("host").Debugw("delivered remaining work", "count", n)
	}
	return err
}
