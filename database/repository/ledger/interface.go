package ledgerRepo

import (
	"errors"

	"seatwise/models"
)

// ErrUnitHeld is returned by AcquireUnitHold when another active reservation
// already holds the unit. It is the storage-level verdict for a lost race and
// is never retried.
var ErrUnitHeld = errors.New("unit already held by an active reservation")

// ErrNotFound is returned when a requested ledger document does not exist.
var ErrNotFound = errors.New("ledger entry not found")

// LedgerRepository is the append-and-update log of reservations and their
// line items. The reservation service composes these primitives into the
// two-step write with compensation; the unique hold index is the only
// storage-level exclusivity guard.
type LedgerRepository interface {
	// Header operations.
	InsertReservation(res *models.Reservation) error
	// DeleteReservation exists solely as the compensating action for a
	// failed line insert; reservations are otherwise never deleted here.
	DeleteReservation(reservationID string) error
	GetReservationByID(reservationID string) (*models.Reservation, error)
	// UpdateReservationStatus performs a conditional (compare-and-set)
	// status transition. It reports false when no document matched the
	// (id, fromStatus) pair, i.e. the reservation is absent or no longer
	// in fromStatus.
	UpdateReservationStatus(reservationID, fromStatus, toStatus string) (bool, error)
	AttachPaymentRef(reservationID, paymentRef string) error

	// Line operations.
	InsertLine(line *models.ReservationLine) error
	LinesByReservation(reservationID string) ([]models.ReservationLine, error)

	// Queries feeding the status resolver and listing surfaces.
	ActiveEntries(providerID string) ([]models.Reservation, []models.ReservationLine, error)
	ListByProvider(providerID string) ([]models.Reservation, error)
	ListByRequester(requesterID string) ([]models.Reservation, error)

	// Unit hold guard.
	AcquireUnitHold(hold *models.UnitHold) error
	ReleaseUnitHold(unitID, reservationID string) error
	// ReleaseUnitHoldByReservation frees every hold a reservation owns
	// without needing its line items, so a rejection can always release
	// the unit even when the lines cannot be read.
	ReleaseUnitHoldByReservation(reservationID string) error

	EnsureIndexes() error
}
