package primes

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/kubev2v/handoff/internal/models"
)

// Executor runs work items. It owns the random source, so it must only be
// used from one goroutine.
type Executor struct {
	rng          *rand.Rand
	maxCandidate int
	maxAttempts  int
}

// NewExecutor creates an executor drawing candidates in [2, maxCandidate).
// A zero seed picks one from the clock.
func NewExecutor(maxCandidate, maxAttempts int, seed uint64) *Executor {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Executor{
		rng:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxCandidate: maxCandidate,
		maxAttempts:  maxAttempts,
	}
}

func (e *Executor) MaxCandidate() int {
	return e.maxCandidate
}

// MaxAttempts is the per-item attempt ceiling, 0 when unbounded.
func (e *Executor) MaxAttempts() int {
	return e.maxAttempts
}

// Execute searches for the item's prime. Input, IsPrime and Attempts track every
// draw; Identifier is only set on success.
func (e *Executor) Execute(item *models.WorkItem) error {
	s := NewSearcher(e.rng, e.maxCandidate, e.maxAttempts)
	s.OnCandidate = func(n int, prime bool) {
		item.Input = n
		item.IsPrime = prime
		item.Attempts++
	}

	var (
		value int
		err   error
	)
	switch item.Kind {
	case models.WorkKindConstrained:
		value, err = s.FindContaining(item.Contains)
	default:
		value, err = s.Find()
	}
	if err != nil {
		return err
	}

	item.Identifier = strconv.Itoa(value)
	return nil
}
