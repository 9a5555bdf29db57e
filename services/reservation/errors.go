package reservation

import "fmt"

// UnauthorizedError signals that the caller lacks the identity or ownership
// required for the operation. Never retried.
type UnauthorizedError struct {
	Reason string
}

func (e UnauthorizedError) Error() string {
	return "unauthorized: " + e.Reason
}

// UnitUnavailableError signals that the target unit was not available at
// write time, including requests that lost the race for it. Surfaced as
// "already taken"; never retried automatically.
type UnitUnavailableError struct {
	UnitID string
}

func (e UnitUnavailableError) Error() string {
	return fmt.Sprintf("unit %s is not available", e.UnitID)
}

// InvalidTransitionError signals a decision on a reservation that is no
// longer pending. Surfaced as a stale-state error prompting a refresh.
type InvalidTransitionError struct {
	ReservationID string
	Current       string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("reservation %s is %s and cannot transition", e.ReservationID, e.Current)
}

// NotFoundError signals that the referenced reservation does not exist.
type NotFoundError struct {
	ReservationID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("reservation %s not found", e.ReservationID)
}

// PersistenceError wraps a transient storage fault. Reads behind it are
// retried a bounded number of times before it surfaces; writes that
// partially succeeded run their compensation before reporting it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}
