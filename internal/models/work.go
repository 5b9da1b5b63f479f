package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const DefaultContains = "0"

type WorkKind string

const (
	// WorkKindBasic - any prime below the configured maximum
	WorkKindBasic WorkKind = "basic"
	// WorkKindConstrained - a prime whose decimal form contains a required substring
	WorkKindConstrained WorkKind = "constrained"
)

func ParseWorkKind(s string) (WorkKind, error) {
	switch s {
	case "basic":
		return WorkKindBasic, nil
	case "constrained", "":
		return WorkKindConstrained, nil
	default:
		return "", fmt.Errorf("invalid work kind: %s", s)
	}
}

// WorkState is the position of an item in the pipeline.
type WorkState string

const (
	WorkStatePending   WorkState = "pending"
	WorkStateRunning   WorkState = "running"
	WorkStateCompleted WorkState = "completed"
	WorkStateFailed    WorkState = "failed"
)

// WorkItem is one prime search request and its result.
// Between submission and delivery it is written only by the worker goroutine.
type WorkItem struct {
	Handle     uuid.UUID
	Kind       WorkKind
	Contains   string
	Input      int
	IsPrime    bool
	Identifier string
	Attempts   int
	State      WorkState
	Err        error

	SubmittedAt time.Time
	StartedAt   time.Time
	FinishedAt  time.Time
}

func NewBasicWorkItem() *WorkItem {
	return &WorkItem{Kind: WorkKindBasic, State: WorkStatePending}
}

func NewConstrainedWorkItem(contains string) *WorkItem {
	return &WorkItem{Kind: WorkKindConstrained, Contains: contains, State: WorkStatePending}
}

func (w *WorkItem) Duration() time.Duration {
	if w.StartedAt.IsZero() || w.FinishedAt.IsZero() {
		return 0
	}
	return w.FinishedAt.Sub(w.StartedAt)
}

// CompletionHandler is invoked once per item on the consumer goroutine.
type CompletionHandler func(item *WorkItem)
