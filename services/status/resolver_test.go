package status

import (
	"testing"

	"seatwise/models"
)

func unit(id, label string) models.ResourceUnit {
	return models.ResourceUnit{ID: id, ProviderID: "prov-1", Label: label}
}

func reservation(id, status string) models.Reservation {
	return models.Reservation{ID: id, ProviderID: "prov-1", Status: status}
}

func line(resID, unitID string) models.ReservationLine {
	return models.ReservationLine{ReservationID: resID, UnitID: unitID, Quantity: 1}
}

func TestResolveStatuses(t *testing.T) {
	units := []models.ResourceUnit{unit("a", "Seat A"), unit("b", "Seat B"), unit("c", "Seat C"), unit("d", "Seat D")}
	reservations := []models.Reservation{
		reservation("r1", models.StatusPendingApproval),
		reservation("r2", models.StatusApproved),
		reservation("r3", models.StatusRejected),
	}
	lines := []models.ReservationLine{
		line("r1", "a"),
		line("r2", "b"),
		line("r3", "c"),
	}

	got := Resolve(units, reservations, lines)
	want := map[string]models.UnitStatus{
		"a": models.UnitPending,
		"b": models.UnitBooked,
		"c": models.UnitAvailable, // rejected reservations do not occupy
		"d": models.UnitAvailable, // untouched
	}
	for id, status := range want {
		if got[id] != status {
			t.Errorf("unit %s = %q, want %q", id, got[id], status)
		}
	}
}

func TestResolveIgnoresOrphanLines(t *testing.T) {
	units := []models.ResourceUnit{unit("a", "Seat A")}
	lines := []models.ReservationLine{line("ghost", "a")}

	got := Resolve(units, nil, lines)
	if got["a"] != models.UnitAvailable {
		t.Errorf("unit with only an orphan line = %q, want available", got["a"])
	}
}

func TestResolveBookedWinsOverPending(t *testing.T) {
	// Two active lines on one unit violates the ledger invariant; the
	// resolver must keep the more restrictive status either way round.
	units := []models.ResourceUnit{unit("a", "Seat A")}
	reservations := []models.Reservation{
		reservation("r1", models.StatusPendingApproval),
		reservation("r2", models.StatusApproved),
	}

	orders := [][]models.ReservationLine{
		{line("r1", "a"), line("r2", "a")},
		{line("r2", "a"), line("r1", "a")},
	}
	for i, lines := range orders {
		got := Resolve(units, reservations, lines)
		if got["a"] != models.UnitBooked {
			t.Errorf("order %d: unit a = %q, want booked", i, got["a"])
		}
	}
}

func TestResolveIsPure(t *testing.T) {
	units := []models.ResourceUnit{unit("a", "Seat A"), unit("b", "Seat B")}
	reservations := []models.Reservation{reservation("r1", models.StatusApproved)}
	lines := []models.ReservationLine{line("r1", "a")}

	first := Resolve(units, reservations, lines)
	second := Resolve(units, reservations, lines)
	for id := range first {
		if first[id] != second[id] {
			t.Errorf("unit %s differs across identical calls: %q vs %q", id, first[id], second[id])
		}
	}

	// Inputs must come back untouched.
	if reservations[0].Status != models.StatusApproved || lines[0].UnitID != "a" {
		t.Errorf("Resolve mutated its inputs")
	}
}

func TestResolveViewsSortedByLabel(t *testing.T) {
	units := []models.ResourceUnit{unit("z", "Seat Z"), unit("a", "Seat A"), unit("m", "Seat M")}

	views := ResolveViews(units, nil, nil)
	if len(views) != 3 {
		t.Fatalf("got %d views, want 3", len(views))
	}
	labels := []string{views[0].Unit.Label, views[1].Unit.Label, views[2].Unit.Label}
	want := []string{"Seat A", "Seat M", "Seat Z"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("views[%d].Label = %q, want %q", i, labels[i], want[i])
		}
	}
	for _, v := range views {
		if v.Status != models.UnitAvailable {
			t.Errorf("unit %s = %q, want available", v.Unit.ID, v.Status)
		}
	}
}
