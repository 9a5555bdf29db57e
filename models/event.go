package models

import "time"

// Change event types emitted on ledger mutations.
const (
	EventReservationCreated  = "reservation.created"
	EventReservationApproved = "reservation.approved"
	EventReservationRejected = "reservation.rejected"
)

// ChangeEvent is a cue for observers to re-derive unit statuses. It is not
// a delta: subscribers re-fetch rather than merge, so the payload only needs
// to say what moved, not how.
type ChangeEvent struct {
	Type          string    `json:"type"`
	ProviderID    string    `json:"provider_id"`
	ReservationID string    `json:"reservation_id"`
	UnitID        string    `json:"unit_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	At            time.Time `json:"at"`
}
