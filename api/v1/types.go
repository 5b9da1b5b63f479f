package v1

import (
	"time"

	"github.com/google/uuid"
)

// WorkKind defines model for WorkRequest.Kind.
type WorkKind string

const (
	WorkKindBasic       WorkKind = "basic"
	WorkKindConstrained WorkKind = "constrained"
)

// WorkState defines model for Work.State.
type WorkState string

const (
	WorkStatePending   WorkState = "pending"
	WorkStateRunning   WorkState = "running"
	WorkStateCompleted WorkState = "completed"
	WorkStateFailed    WorkState = "failed"
)

// ControllerState defines model for Status.State.
type ControllerState string

const (
	ControllerStateStopped  ControllerState = "stopped"
	ControllerStateRunning  ControllerState = "running"
	ControllerStateShutDown ControllerState = "shut_down"
)

// WorkRequest defines model for WorkRequest.
type WorkRequest struct {
	// Kind defaults to constrained.
	Kind *WorkKind `json:"kind,omitempty"`

	// Contains is the substring required in a constrained result. Defaults to the server setting.
	Contains *string `json:"contains,omitempty"`
}

// Work defines model for Work.
type Work struct {
	Id          uuid.UUID  `json:"id"`
	Kind        WorkKind   `json:"kind"`
	State       WorkState  `json:"state"`
	Contains    *string    `json:"contains,omitempty"`
	Identifier  *string    `json:"identifier,omitempty"`
	Input       *int       `json:"input,omitempty"`
	Attempts    *int       `json:"attempts,omitempty"`
	Error       *string    `json:"error,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	DurationMs  *int64     `json:"durationMs,omitempty"`
}

// Status defines model for Status.
type Status struct {
	State     ControllerState `json:"state"`
	Pending   int             `json:"pending"`
	Finished  int             `json:"finished"`
	Completed uint64          `json:"completed"`
	Delivered uint64          `json:"delivered"`
}

// Error defines model for Error.
type Error struct {
	Error string `json:"error"`
}

// CreateWorkJSONRequestBody defines body for CreateWork for application/json ContentType.
type CreateWorkJSONRequestBody = WorkRequest
