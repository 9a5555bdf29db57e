package catalog

import (
	"context"
	"errors"
	"testing"

	catalogRepo "seatwise/database/repository/catalog"
	ledgerRepo "seatwise/database/repository/ledger"
	"seatwise/models"

	"go.uber.org/zap"
)

type fakeRepo struct {
	units map[string]models.ResourceUnit
}

func newFakeRepo(units ...models.ResourceUnit) *fakeRepo {
	r := &fakeRepo{units: make(map[string]models.ResourceUnit)}
	for _, u := range units {
		r.units[u.ID] = u
	}
	return r
}

func (r *fakeRepo) Create(unit *models.ResourceUnit) error {
	r.units[unit.ID] = *unit
	return nil
}

func (r *fakeRepo) GetByID(unitID string) (*models.ResourceUnit, error) {
	u, ok := r.units[unitID]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	return &u, nil
}

func (r *fakeRepo) Update(unit *models.ResourceUnit) error {
	r.units[unit.ID] = *unit
	return nil
}

func (r *fakeRepo) Delete(unitID string) error {
	delete(r.units, unitID)
	return nil
}

func (r *fakeRepo) ListByProvider(providerID string) ([]models.ResourceUnit, error) {
	var out []models.ResourceUnit
	for _, u := range r.units {
		if u.ProviderID == providerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeRepo) EnsureIndexes() error { return nil }

// stubLedger only answers ActiveEntries; the embedded interface covers the
// rest of the surface, which these tests never touch.
type stubLedger struct {
	ledgerRepo.LedgerRepository
	reservations []models.Reservation
	lines        []models.ReservationLine
}

func (l *stubLedger) ActiveEntries(string) ([]models.Reservation, []models.ReservationLine, error) {
	return l.reservations, l.lines, nil
}

func newService(repo *fakeRepo, ledger *stubLedger) *DefaultCatalogService {
	if ledger == nil {
		ledger = &stubLedger{}
	}
	return &DefaultCatalogService{Repo: repo, Ledger: ledger, Logger: zap.NewNop()}
}

func TestCreateUnitValidation(t *testing.T) {
	svc := newService(newFakeRepo(), nil)

	if _, err := svc.CreateUnit(context.Background(), "prov-1", "", 10); err == nil {
		t.Error("empty label accepted")
	}
	if _, err := svc.CreateUnit(context.Background(), "prov-1", "Seat 1", -5); err == nil {
		t.Error("negative price accepted")
	}

	unit, err := svc.CreateUnit(context.Background(), "prov-1", "Seat 1", 10)
	if err != nil {
		t.Fatalf("CreateUnit failed: %v", err)
	}
	if unit.ID == "" || unit.ProviderID != "prov-1" {
		t.Errorf("unexpected unit: %+v", unit)
	}
}

func TestUpdateUnitOwnership(t *testing.T) {
	repo := newFakeRepo(models.ResourceUnit{ID: "u1", ProviderID: "prov-1", Label: "Seat 1", UnitPrice: 10})
	svc := newService(repo, nil)

	if _, err := svc.UpdateUnit(context.Background(), "prov-2", "u1", "Hijacked", 1); !errors.Is(err, ErrNotOwner) {
		t.Errorf("foreign update error = %v, want ErrNotOwner", err)
	}

	unit, err := svc.UpdateUnit(context.Background(), "prov-1", "u1", "Seat 1B", 12)
	if err != nil {
		t.Fatalf("UpdateUnit failed: %v", err)
	}
	if unit.Label != "Seat 1B" || unit.UnitPrice != 12 {
		t.Errorf("unexpected unit after update: %+v", unit)
	}
}

func TestDeleteUnitRefusesOccupied(t *testing.T) {
	repo := newFakeRepo(models.ResourceUnit{ID: "u1", ProviderID: "prov-1", Label: "Seat 1"})
	ledger := &stubLedger{
		reservations: []models.Reservation{{ID: "r1", ProviderID: "prov-1", Status: models.StatusPendingApproval}},
		lines:        []models.ReservationLine{{ReservationID: "r1", UnitID: "u1"}},
	}
	svc := newService(repo, ledger)

	if err := svc.DeleteUnit(context.Background(), "prov-1", "u1"); !errors.Is(err, ErrUnitOccupied) {
		t.Errorf("delete of occupied unit error = %v, want ErrUnitOccupied", err)
	}

	// Once the ledger no longer references the unit, deletion goes through.
	ledger.reservations = nil
	ledger.lines = nil
	if err := svc.DeleteUnit(context.Background(), "prov-1", "u1"); err != nil {
		t.Fatalf("DeleteUnit failed: %v", err)
	}
	if _, err := repo.GetByID("u1"); err == nil {
		t.Error("unit still present after delete")
	}
}

func TestDeleteUnitOwnership(t *testing.T) {
	repo := newFakeRepo(models.ResourceUnit{ID: "u1", ProviderID: "prov-1", Label: "Seat 1"})
	svc := newService(repo, nil)

	if err := svc.DeleteUnit(context.Background(), "prov-2", "u1"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("foreign delete error = %v, want ErrNotOwner", err)
	}
}
