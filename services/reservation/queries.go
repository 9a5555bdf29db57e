package reservation

import (
	"context"
	"errors"

	ledgerRepo "seatwise/database/repository/ledger"
	"seatwise/models"
	"seatwise/services/status"
)

// GetReservation retrieves a reservation header with its line items.
func (s *DefaultReservationService) GetReservation(ctx context.Context, reservationID string) (*models.Reservation, []models.ReservationLine, error) {
	var res *models.Reservation
	if err := withReadRetry(func() error {
		var readErr error
		res, readErr = s.Ledger.GetReservationByID(reservationID)
		return readErr
	}); err != nil {
		if errors.Is(err, ledgerRepo.ErrNotFound) {
			return nil, nil, NotFoundError{ReservationID: reservationID}
		}
		return nil, nil, PersistenceError{Op: "read reservation", Err: err}
	}

	var lines []models.ReservationLine
	if err := withReadRetry(func() error {
		var readErr error
		lines, readErr = s.Ledger.LinesByReservation(reservationID)
		return readErr
	}); err != nil {
		return nil, nil, PersistenceError{Op: "read reservation lines", Err: err}
	}
	return res, lines, nil
}

// ListForProvider lists all reservations addressed to a provider.
func (s *DefaultReservationService) ListForProvider(ctx context.Context, providerID string) ([]models.Reservation, error) {
	var out []models.Reservation
	if err := withReadRetry(func() error {
		var readErr error
		out, readErr = s.Ledger.ListByProvider(providerID)
		return readErr
	}); err != nil {
		return nil, PersistenceError{Op: "list provider reservations", Err: err}
	}
	return out, nil
}

// ListForRequester lists all reservations made by a requester.
func (s *DefaultReservationService) ListForRequester(ctx context.Context, requesterID string) ([]models.Reservation, error) {
	var out []models.Reservation
	if err := withReadRetry(func() error {
		var readErr error
		out, readErr = s.Ledger.ListByRequester(requesterID)
		return readErr
	}); err != nil {
		return nil, PersistenceError{Op: "list requester reservations", Err: err}
	}
	return out, nil
}

// UnitStatuses returns every unit of a provider's catalog with its derived
// status. The snapshot cache fronts the resolver for display reads; a miss
// re-derives from the catalog and the active ledger entries.
func (s *DefaultReservationService) UnitStatuses(ctx context.Context, providerID string) ([]models.UnitStatusView, error) {
	if views, ok := s.Cache.Get(ctx, providerID); ok {
		return views, nil
	}

	var units []models.ResourceUnit
	if err := withReadRetry(func() error {
		var readErr error
		units, readErr = s.Catalog.ListByProvider(providerID)
		return readErr
	}); err != nil {
		return nil, PersistenceError{Op: "list catalog units", Err: err}
	}

	var activeRes []models.Reservation
	var activeLines []models.ReservationLine
	if err := withReadRetry(func() error {
		var readErr error
		activeRes, activeLines, readErr = s.Ledger.ActiveEntries(providerID)
		return readErr
	}); err != nil {
		return nil, PersistenceError{Op: "read active ledger entries", Err: err}
	}

	views := status.ResolveViews(units, activeRes, activeLines)
	s.Cache.Set(ctx, providerID, views)
	return views, nil
}

// AttachPaymentRef stores the payment collaborator's opaque reference on a
// reservation owned by the requester. The reference is never validated here.
func (s *DefaultReservationService) AttachPaymentRef(ctx context.Context, reservationID, requesterID, paymentRef string) error {
	if requesterID == "" {
		return UnauthorizedError{Reason: "missing requester identity"}
	}

	res, _, err := s.GetReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.RequesterID != requesterID {
		return UnauthorizedError{Reason: "reservation belongs to another requester"}
	}

	if err := s.Ledger.AttachPaymentRef(reservationID, paymentRef); err != nil {
		if errors.Is(err, ledgerRepo.ErrNotFound) {
			return NotFoundError{ReservationID: reservationID}
		}
		return PersistenceError{Op: "attach payment ref", Err: err}
	}
	return nil
}
