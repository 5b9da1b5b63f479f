package handlers

import (
	"golang.org/x/time/rate"

	v1 "github.com/kubev2v/handoff/api/v1"
	"github.com/kubev2v/handoff/internal/services"
)

var _ v1.ServerInterface = (*Handler)(nil)

type Handler struct {
	controller      *services.Controller
	limiter         *rate.Limiter
	defaultContains string
}

// New creates the API handler. Submissions above submitRate per second, with
// bursts of submitBurst, are refused rather than queued.
func New(controller *services.Controller, defaultContains string, submitRate float64, submitBurst int) *Handler {
	return &Handler{
		controller:      controller,
		limiter:         rate.NewLimiter(rate.Limit(submitRate), submitBurst),
		defaultContains: defaultContains,
	}
}
