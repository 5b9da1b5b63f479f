package errors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type UnsatisfiableWorkError struct {
	MaxCandidate int
	Contains     string
}

func NewUnsatisfiableWorkError(maxCandidate int, contains string) *UnsatisfiableWorkError {
	return &UnsatisfiableWorkError{MaxCandidate: maxCandidate, Contains: contains}
}

func (e *UnsatisfiableWorkError) Error() string {
	return fmt.Sprintf("no prime below %d contains %q", e.MaxCandidate, e.Contains)
}

func IsUnsatisfiableWorkError(err error) bool {
	var e *UnsatisfiableWorkError
	return errors.As(err, &e)
}

// UnverifiableWorkError is returned for constrained work that could not be shown
// satisfiable cheaply while the search has no attempt ceiling.
type UnverifiableWorkError struct {
	MaxCandidate int
	Contains     string
}

func NewUnverifiableWorkError(maxCandidate int, contains string) *UnverifiableWorkError {
	return &UnverifiableWorkError{MaxCandidate: maxCandidate, Contains: contains}
}

func (e *UnverifiableWorkError) Error() string {
	return fmt.Sprintf("cannot verify that a prime below %d contains %q without an attempt ceiling", e.MaxCandidate, e.Contains)
}

func IsUnverifiableWorkError(err error) bool {
	var e *UnverifiableWorkError
	return errors.As(err, &e)
}

type AttemptsExhaustedError struct {
	Attempts int
}

func NewAttemptsExhaustedError(attempts int) *AttemptsExhaustedError {
	return &AttemptsExhaustedError{Attempts: attempts}
}

func (e *AttemptsExhaustedError) Error() string {
	return fmt.Sprintf("no acceptable candidate after %d attempts", e.Attempts)
}

func IsAttemptsExhaustedError(err error) bool {
	var e *AttemptsExhaustedError
	return errors.As(err, &e)
}

type WorkPanicError struct {
	Value any
}

func NewWorkPanicError(value any) *WorkPanicError {
	return &WorkPanicError{Value: value}
}

func (e *WorkPanicError) Error() string {
	return fmt.Sprintf("work panicked: %v", e.Value)
}

func IsWorkPanicError(err error) bool {
	var e *WorkPanicError
	return errors.As(err, &e)
}

type WorkerStoppedError struct{}

func NewWorkerStoppedError() *WorkerStoppedError {
	return &WorkerStoppedError{}
}

func (e *WorkerStoppedError) Error() string {
	return "worker is stopped"
}

func IsWorkerStoppedError(err error) bool {
	var e *WorkerStoppedError
	return errors.As(err, &e)
}

type WorkNotFoundError struct {
	Handle uuid.UUID
}

func NewWorkNotFoundError(handle uuid.UUID) *WorkNotFoundError {
	return &WorkNotFoundError{Handle: handle}
}

func (e *WorkNotFoundError) Error() string {
	return fmt.Sprintf("work %s not found", e.Handle)
}

func IsResourceNotFoundError(err error) bool {
	var e *WorkNotFoundError
	return errors.As(err, &e)
}

type UnauthorizedError struct{}

func NewUnauthorizedError() *UnauthorizedError {
	return &UnauthorizedError{}
}

func (e *UnauthorizedError) Error() string {
	return "unauthorized"
}

func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

type ThrottledError struct{}

func NewThrottledError() *ThrottledError {
	return &ThrottledError{}
}

func (e *ThrottledError) Error() string {
	return "submission rate exceeded"
}

func IsThrottledError(err error) bool {
	var e *ThrottledError
	return errors.As(err, &e)
}
