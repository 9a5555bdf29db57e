package models

import "time"

// Reservation statuses. Approved and rejected are terminal; a rejected
// reservation frees its unit, an approved one occupies it until an external
// cancellation flow removes it.
const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

// Reservation is a ledger header: one reservation request made by a
// requester against a provider's catalog.
type Reservation struct {
	ID            string    `bson:"id" json:"id"`
	RequesterID   string    `bson:"requester_id" json:"requester_id"`
	ProviderID    string    `bson:"provider_id" json:"provider_id"`
	TotalAmount   float64   `bson:"total_amount" json:"total_amount"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	ScheduledDate string    `bson:"scheduled_date,omitempty" json:"scheduled_date,omitempty"` // "YYYY-MM-DD"
	ScheduledSlot string    `bson:"scheduled_slot,omitempty" json:"scheduled_slot,omitempty"` // e.g. "morning"
	PaymentRef    string    `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"`       // Opaque, attached by the payment collaborator
}

// Active reports whether the reservation still occupies its unit for
// status derivation purposes.
func (r Reservation) Active() bool {
	return r.Status == StatusPendingApproval || r.Status == StatusApproved
}

// ReservationLine binds one resource unit to one reservation header.
type ReservationLine struct {
	ReservationID string  `bson:"reservation_id" json:"reservation_id"`
	UnitID        string  `bson:"unit_id" json:"unit_id"`
	Quantity      int     `bson:"quantity" json:"quantity"` // Always 1 for seat units
	Price         float64 `bson:"price" json:"price"`
}

// UnitHold is the storage-level exclusivity guard: at most one hold may
// exist per unit (unique index), so two concurrent requests for the same
// unit cannot both create active ledger entries.
type UnitHold struct {
	UnitID        string    `bson:"unit_id" json:"unit_id"`
	ReservationID string    `bson:"reservation_id" json:"reservation_id"`
	ProviderID    string    `bson:"provider_id" json:"provider_id"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
