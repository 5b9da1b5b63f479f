package v1

import (
	"github.com/kubev2v/handoff/internal/models"
)

func (s *Status) FromModel(m models.ControllerStatus) {
	s.State = ControllerState(m.State)
	s.Pending = m.Pending
	s.Finished = m.Finished
	s.Completed = m.Completed
	s.Delivered = m.Delivered
}

// NewWorkFromModel converts a models.WorkItem to an API Work.
func NewWorkFromModel(item models.WorkItem) Work {
	w := Work{
		Id:    item.Handle,
		Kind:  WorkKind(item.Kind),
		State: WorkState(item.State),
	}

	if item.Kind == models.WorkKindConstrained {
		w.Contains = &item.Contains
	}
	if !item.SubmittedAt.IsZero() {
		w.SubmittedAt = &item.SubmittedAt
	}

	switch item.State {
	case models.WorkStateCompleted:
		w.Identifier = &item.Identifier
	case models.WorkStateFailed:
		if item.Err != nil {
			msg := item.Err.Error()
			w.Error = &msg
		}
	default:
		return w
	}

	w.Input = &item.Input
	w.Attempts = &item.Attempts
	w.FinishedAt = &item.FinishedAt
	ms := item.Duration().Milliseconds()
	w.DurationMs = &ms

	return w
}

// ToModel builds the work item described by the request. An unset contains
// falls back to defaultContains.
func (r WorkRequest) ToModel(defaultContains string) (*models.WorkItem, error) {
	kind := ""
	if r.Kind != nil {
		kind = string(*r.Kind)
	}

	k, err := models.ParseWorkKind(kind)
	if err != nil {
		return nil, err
	}

	if k == models.WorkKindBasic {
		return models.NewBasicWorkItem(), nil
	}

	contains := defaultContains
	if r.Contains != nil {
		contains = *r.Contains
	}
	return models.NewConstrainedWorkItem(contains), nil
}
