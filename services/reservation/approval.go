package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	ledgerRepo "seatwise/database/repository/ledger"
	"seatwise/models"

	"go.uber.org/zap"
)

// Decide transitions a pending reservation to approved or rejected on
// behalf of the owning provider. The transition is a single conditional
// update on the header: re-applying a decision to an already-terminal
// reservation fails with InvalidTransitionError rather than being silently
// accepted. A rejection releases the unit's hold, freeing it permanently.
func (s *DefaultReservationService) Decide(ctx context.Context, reservationID, target, actingProviderID string) (*models.Reservation, error) {
	if actingProviderID == "" {
		return nil, UnauthorizedError{Reason: "missing provider identity"}
	}
	if target != models.StatusApproved && target != models.StatusRejected {
		return nil, InvalidTransitionError{ReservationID: reservationID, Current: target}
	}

	var res *models.Reservation
	if err := withReadRetry(func() error {
		var readErr error
		res, readErr = s.Ledger.GetReservationByID(reservationID)
		return readErr
	}); err != nil {
		if errors.Is(err, ledgerRepo.ErrNotFound) {
			return nil, NotFoundError{ReservationID: reservationID}
		}
		return nil, PersistenceError{Op: "read reservation", Err: err}
	}

	if res.ProviderID != actingProviderID {
		return nil, UnauthorizedError{Reason: "reservation belongs to another provider"}
	}

	matched, err := s.Ledger.UpdateReservationStatus(reservationID, models.StatusPendingApproval, target)
	if err != nil {
		return nil, PersistenceError{Op: "update reservation status", Err: err}
	}
	if !matched {
		// Lost to a concurrent or earlier decision; report the state the
		// caller should refresh to.
		current, readErr := s.Ledger.GetReservationByID(reservationID)
		if readErr != nil {
			if errors.Is(readErr, ledgerRepo.ErrNotFound) {
				return nil, NotFoundError{ReservationID: reservationID}
			}
			return nil, PersistenceError{Op: "read reservation after failed transition", Err: readErr}
		}
		return nil, InvalidTransitionError{ReservationID: reservationID, Current: current.Status}
	}
	res.Status = target

	// A rejection must free the unit no matter what, so the release keys on
	// the reservation alone instead of depending on a lines read.
	if target == models.StatusRejected {
		if err := s.Ledger.ReleaseUnitHoldByReservation(reservationID); err != nil {
			s.Logger.Error("failed to release holds of rejected reservation",
				zap.String("reservationId", reservationID), zap.Error(err))
		}
	}

	var lines []models.ReservationLine
	if err := withReadRetry(func() error {
		var readErr error
		lines, readErr = s.Ledger.LinesByReservation(reservationID)
		return readErr
	}); err != nil {
		s.Logger.Warn("could not load lines after decision",
			zap.String("reservationId", reservationID), zap.Error(err))
	}

	s.afterDecide(ctx, res, lines)
	return res, nil
}

// afterDecide runs the best-effort side effects of a decision.
func (s *DefaultReservationService) afterDecide(ctx context.Context, res *models.Reservation, lines []models.ReservationLine) {
	s.Cache.Invalidate(ctx, res.ProviderID)

	eventType := models.EventReservationApproved
	verdict := "approved"
	if res.Status == models.StatusRejected {
		eventType = models.EventReservationRejected
		verdict = "rejected"
	}

	var unitID string
	if len(lines) > 0 {
		unitID = lines[0].UnitID
	}

	event := models.ChangeEvent{
		Type:          eventType,
		ProviderID:    res.ProviderID,
		ReservationID: res.ID,
		UnitID:        unitID,
		Status:        res.Status,
		At:            time.Now(),
	}
	if err := s.Notifier.Publish(ctx, res.ProviderID, event); err != nil {
		s.Logger.Warn("failed to publish decision event",
			zap.String("reservationId", res.ID), zap.Error(err))
	}

	if s.Push != nil {
		title := "Reservation " + verdict
		body := fmt.Sprintf("Your reservation request was %s.", verdict)
		if err := s.Push.SendPush(ctx, res.RequesterID, title, body, map[string]string{
			"type":          "reservation_" + verdict,
			"reservationId": res.ID,
		}); err != nil {
			s.Logger.Warn("failed to push decision to requester",
				zap.String("requesterId", res.RequesterID), zap.Error(err))
		}
	}
}
