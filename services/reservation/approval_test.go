package reservation

import (
	"context"
	"errors"
	"testing"

	"seatwise/models"
)

func pendingReservation(t *testing.T, svc *DefaultReservationService, unitID, requesterID string) *models.Reservation {
	t.Helper()
	res, err := svc.Create(context.Background(), CreateRequest{
		ProviderID:  "prov-1",
		UnitID:      unitID,
		RequesterID: requesterID,
	})
	if err != nil {
		t.Fatalf("seeding reservation failed: %v", err)
	}
	return res
}

func TestDecideApprove(t *testing.T) {
	ledger := newFakeLedger()
	cat := newFakeCatalog(seatUnit("7", "prov-1", "Seat 7"))
	svc, notif := newTestService(ledger, cat)
	res := pendingReservation(t, svc, "7", "student-1")

	decided, err := svc.Decide(context.Background(), res.ID, models.StatusApproved, "prov-1")
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if decided.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", decided.Status)
	}

	stored, _ := ledger.GetReservationByID(res.ID)
	if stored.Status != models.StatusApproved {
		t.Errorf("stored status = %q, want approved", stored.Status)
	}
	if ledger.holdCount() != 1 {
		t.Errorf("approval released the hold; the unit must stay occupied")
	}

	events := notif.published()
	last := events[len(events)-1]
	if last.Type != models.EventReservationApproved {
		t.Errorf("last event type = %q, want %q", last.Type, models.EventReservationApproved)
	}
}

func TestDecideRejectFreesUnit(t *testing.T) {
	ledger := newFakeLedger()
	cat := newFakeCatalog(seatUnit("7", "prov-1", "Seat 7"))
	svc, notif := newTestService(ledger, cat)
	res := pendingReservation(t, svc, "7", "student-1")

	if _, err := svc.Decide(context.Background(), res.ID, models.StatusRejected, "prov-1"); err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if ledger.holdCount() != 0 {
		t.Errorf("rejection must release the unit hold")
	}

	events := notif.published()
	last := events[len(events)-1]
	if last.Type != models.EventReservationRejected {
		t.Errorf("last event type = %q, want %q", last.Type, models.EventReservationRejected)
	}

	// The freed unit is immediately bookable again.
	if _, err := svc.Create(context.Background(), CreateRequest{
		ProviderID: "prov-1", UnitID: "7", RequesterID: "student-2",
	}); err != nil {
		t.Fatalf("Create after rejection failed: %v", err)
	}
}

func TestDecideRejectFreesUnitDespiteLineReadFailure(t *testing.T) {
	ledger := newFakeLedger()
	cat := newFakeCatalog(seatUnit("7", "prov-1", "Seat 7"))
	svc, _ := newTestService(ledger, cat)
	res := pendingReservation(t, svc, "7", "student-1")

	// The hold release must not depend on reading the lines back.
	ledger.failLinesRead = errors.New("connection reset")
	if _, err := svc.Decide(context.Background(), res.ID, models.StatusRejected, "prov-1"); err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if ledger.holdCount() != 0 {
		t.Fatalf("hold count after rejection = %d, want 0", ledger.holdCount())
	}

	ledger.failLinesRead = nil
	if _, err := svc.Create(context.Background(), CreateRequest{
		ProviderID: "prov-1", UnitID: "7", RequesterID: "student-2",
	}); err != nil {
		t.Fatalf("Create for the freed unit failed: %v", err)
	}
}

func TestDecideTwiceIsStale(t *testing.T) {
	ledger := newFakeLedger()
	cat := newFakeCatalog(seatUnit("7", "prov-1", "Seat 7"))
	svc, _ := newTestService(ledger, cat)
	res := pendingReservation(t, svc, "7", "student-1")

	if _, err := svc.Decide(context.Background(), res.ID, models.StatusApproved, "prov-1"); err != nil {
		t.Fatalf("first Decide failed: %v", err)
	}

	_, err := svc.Decide(context.Background(), res.ID, models.StatusRejected, "prov-1")
	var invalid InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("second Decide error = %v, want InvalidTransitionError", err)
	}
	if invalid.Current != models.StatusApproved {
		t.Errorf("reported current status = %q, want approved", invalid.Current)
	}

	// The losing decision must not have flipped anything.
	stored, _ := ledger.GetReservationByID(res.ID)
	if stored.Status != models.StatusApproved {
		t.Errorf("stored status = %q after losing decision, want approved", stored.Status)
	}
	if ledger.holdCount() != 1 {
		t.Errorf("losing rejection released the hold")
	}
}

func TestDecideOwnershipAndTargets(t *testing.T) {
	ledger := newFakeLedger()
	cat := newFakeCatalog(seatUnit("7", "prov-1", "Seat 7"))
	svc, _ := newTestService(ledger, cat)
	res := pendingReservation(t, svc, "7", "student-1")

	_, err := svc.Decide(context.Background(), res.ID, models.StatusApproved, "prov-2")
	var unauthorized UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Errorf("foreign provider error = %v, want UnauthorizedError", err)
	}

	_, err = svc.Decide(context.Background(), res.ID, models.StatusApproved, "")
	if !errors.As(err, &unauthorized) {
		t.Errorf("missing identity error = %v, want UnauthorizedError", err)
	}

	_, err = svc.Decide(context.Background(), res.ID, "cancelled", "prov-1")
	var invalid InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Errorf("bogus target error = %v, want InvalidTransitionError", err)
	}

	stored, _ := ledger.GetReservationByID(res.ID)
	if stored.Status != models.StatusPendingApproval {
		t.Errorf("stored status = %q, want untouched pending_approval", stored.Status)
	}
}

func TestDecideUnknownReservation(t *testing.T) {
	ledger := newFakeLedger()
	cat := newFakeCatalog()
	svc, _ := newTestService(ledger, cat)

	_, err := svc.Decide(context.Background(), "ghost", models.StatusApproved, "prov-1")
	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestUnitStatusesReflectLedger(t *testing.T) {
	ledger := newFakeLedger()
	cat := newFakeCatalog(
		seatUnit("1", "prov-1", "Seat 1"),
		seatUnit("2", "prov-1", "Seat 2"),
		seatUnit("3", "prov-1", "Seat 3"),
	)
	svc, _ := newTestService(ledger, cat)

	pending := pendingReservation(t, svc, "1", "student-1")
	approved := pendingReservation(t, svc, "2", "student-2")
	if _, err := svc.Decide(context.Background(), approved.ID, models.StatusApproved, "prov-1"); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	_ = pending

	views, err := svc.UnitStatuses(context.Background(), "prov-1")
	if err != nil {
		t.Fatalf("UnitStatuses returned error: %v", err)
	}
	want := map[string]models.UnitStatus{
		"1": models.UnitPending,
		"2": models.UnitBooked,
		"3": models.UnitAvailable,
	}
	if len(views) != len(want) {
		t.Fatalf("got %d views, want %d", len(views), len(want))
	}
	for _, v := range views {
		if v.Status != want[v.Unit.ID] {
			t.Errorf("unit %s status = %q, want %q", v.Unit.ID, v.Status, want[v.Unit.ID])
		}
	}
}
