package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogRepo "seatwise/database/repository/catalog"
	ledgerRepo "seatwise/database/repository/ledger"
	"seatwise/models"
	"seatwise/services/status"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates that the target unit is free, then writes the
// reservation to the ledger: hold first, then header, then line. The unique
// hold index turns the availability check's check-then-act window into
// exactly-one-winner semantics; any failure after the hold compensates in
// reverse order so a header never persists without its line.
func (s *DefaultReservationService) Create(ctx context.Context, req CreateRequest) (*models.Reservation, error) {
	if req.RequesterID == "" {
		return nil, UnauthorizedError{Reason: "missing requester identity"}
	}

	var unit *models.ResourceUnit
	if err := withReadRetry(func() error {
		var readErr error
		unit, readErr = s.Catalog.GetByID(req.UnitID)
		return readErr
	}); err != nil {
		// A missing unit is "not available"; a storage fault is "try again".
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, UnitUnavailableError{UnitID: req.UnitID}
		}
		return nil, PersistenceError{Op: "read catalog unit", Err: err}
	}
	if unit.ProviderID != req.ProviderID {
		return nil, UnitUnavailableError{UnitID: req.UnitID}
	}

	// Availability precondition against the latest known ledger state.
	// This read gives the requester a friendly verdict before any write;
	// the hold below is what makes the verdict safe under concurrency.
	var activeRes []models.Reservation
	var activeLines []models.ReservationLine
	if err := withReadRetry(func() error {
		var readErr error
		activeRes, activeLines, readErr = s.Ledger.ActiveEntries(req.ProviderID)
		return readErr
	}); err != nil {
		return nil, PersistenceError{Op: "read active ledger entries", Err: err}
	}

	resolved := status.Resolve([]models.ResourceUnit{*unit}, activeRes, activeLines)
	if resolved[unit.ID] != models.UnitAvailable {
		return nil, UnitUnavailableError{UnitID: unit.ID}
	}

	now := time.Now()
	res := &models.Reservation{
		ID:            uuid.New().String(),
		RequesterID:   req.RequesterID,
		ProviderID:    req.ProviderID,
		TotalAmount:   unit.UnitPrice,
		Status:        models.StatusPendingApproval,
		CreatedAt:     now,
		ScheduledDate: req.ScheduledDate,
		ScheduledSlot: req.ScheduledSlot,
	}

	hold := &models.UnitHold{
		UnitID:        unit.ID,
		ReservationID: res.ID,
		ProviderID:    req.ProviderID,
		CreatedAt:     now,
	}
	if err := s.Ledger.AcquireUnitHold(hold); err != nil {
		if errors.Is(err, ledgerRepo.ErrUnitHeld) {
			return nil, UnitUnavailableError{UnitID: unit.ID}
		}
		return nil, PersistenceError{Op: "acquire unit hold", Err: err}
	}

	if err := s.Ledger.InsertReservation(res); err != nil {
		s.compensate(res.ID, unit.ID, false)
		return nil, PersistenceError{Op: "insert reservation header", Err: err}
	}

	line := &models.ReservationLine{
		ReservationID: res.ID,
		UnitID:        unit.ID,
		Quantity:      1,
		Price:         unit.UnitPrice,
	}
	if err := s.Ledger.InsertLine(line); err != nil {
		s.compensate(res.ID, unit.ID, true)
		return nil, PersistenceError{Op: "insert reservation line", Err: err}
	}

	s.afterCreate(ctx, res, unit)
	return res, nil
}

// compensate rolls back a partially written reservation: the header (when
// it was inserted) and always the hold. Failures here are logged loudly;
// they leave the store inconsistent and need operator attention.
func (s *DefaultReservationService) compensate(reservationID, unitID string, headerInserted bool) {
	if headerInserted {
		if err := s.Ledger.DeleteReservation(reservationID); err != nil {
			s.Logger.Error("compensation failed: orphan reservation header remains",
				zap.String("reservationId", reservationID), zap.Error(err))
		}
	}
	if err := s.Ledger.ReleaseUnitHold(unitID, reservationID); err != nil {
		s.Logger.Error("compensation failed: stale unit hold remains",
			zap.String("unitId", unitID),
			zap.String("reservationId", reservationID), zap.Error(err))
	}
}

// afterCreate runs the best-effort side effects of a successful request:
// cache invalidation, fan-out, provider push, reminder scheduling. None of
// them can fail the reservation.
func (s *DefaultReservationService) afterCreate(ctx context.Context, res *models.Reservation, unit *models.ResourceUnit) {
	s.Cache.Invalidate(ctx, res.ProviderID)

	event := models.ChangeEvent{
		Type:          models.EventReservationCreated,
		ProviderID:    res.ProviderID,
		ReservationID: res.ID,
		UnitID:        unit.ID,
		Status:        res.Status,
		At:            time.Now(),
	}
	if err := s.Notifier.Publish(ctx, res.ProviderID, event); err != nil {
		s.Logger.Warn("failed to publish reservation.created event",
			zap.String("reservationId", res.ID), zap.Error(err))
	}

	if s.Push != nil {
		title := "New reservation request"
		body := fmt.Sprintf("Seat %s has been requested and is awaiting your decision.", unit.Label)
		if err := s.Push.SendPush(ctx, res.ProviderID, title, body, map[string]string{
			"type":          "reservation_created",
			"reservationId": res.ID,
		}); err != nil {
			s.Logger.Warn("failed to push reservation.created to provider",
				zap.String("providerId", res.ProviderID), zap.Error(err))
		}
	}

	if s.Reminder != nil {
		payload := models.ReminderPayload{
			ReservationID: res.ID,
			ProviderID:    res.ProviderID,
			UnitLabel:     unit.Label,
			Title:         "Reservation still pending",
			Body:          fmt.Sprintf("The request for seat %s is still awaiting your decision.", unit.Label),
		}
		if err := s.Reminder.ScheduleApprovalReminder(ctx, payload); err != nil {
			s.Logger.Warn("failed to schedule approval reminder",
				zap.String("reservationId", res.ID), zap.Error(err))
		}
	}
}
