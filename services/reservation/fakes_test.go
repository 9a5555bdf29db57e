package reservation

import (
	"context"
	"sync"

	catalogRepo "seatwise/database/repository/catalog"
	ledgerRepo "seatwise/database/repository/ledger"
	"seatwise/models"

	"go.uber.org/zap"
)

// fakeCatalog is an in-memory catalog repository.
type fakeCatalog struct {
	mu    sync.Mutex
	units map[string]models.ResourceUnit

	failGetByID error
}

func newFakeCatalog(units ...models.ResourceUnit) *fakeCatalog {
	c := &fakeCatalog{units: make(map[string]models.ResourceUnit)}
	for _, u := range units {
		c.units[u.ID] = u
	}
	return c
}

func (c *fakeCatalog) Create(unit *models.ResourceUnit) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.units[unit.ID] = *unit
	return nil
}

func (c *fakeCatalog) GetByID(unitID string) (*models.ResourceUnit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGetByID != nil {
		return nil, c.failGetByID
	}
	u, ok := c.units[unitID]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	return &u, nil
}

func (c *fakeCatalog) Update(unit *models.ResourceUnit) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.units[unit.ID] = *unit
	return nil
}

func (c *fakeCatalog) Delete(unitID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.units, unitID)
	return nil
}

func (c *fakeCatalog) ListByProvider(providerID string) ([]models.ResourceUnit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.ResourceUnit
	for _, u := range c.units {
		if u.ProviderID == providerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (c *fakeCatalog) EnsureIndexes() error { return nil }

// fakeLedger is an in-memory ledger repository. The holds map enforces the
// same at-most-one-hold-per-unit rule the unique Mongo index does, under a
// mutex, so concurrent Create calls race through it realistically.
type fakeLedger struct {
	mu           sync.Mutex
	reservations map[string]models.Reservation
	lines        map[string][]models.ReservationLine
	holds        map[string]string // unitID -> reservationID

	failInsertHeader error
	failInsertLine   error
	failLinesRead    error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		reservations: make(map[string]models.Reservation),
		lines:        make(map[string][]models.ReservationLine),
		holds:        make(map[string]string),
	}
}

func (l *fakeLedger) InsertReservation(res *models.Reservation) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failInsertHeader != nil {
		return l.failInsertHeader
	}
	l.reservations[res.ID] = *res
	return nil
}

func (l *fakeLedger) DeleteReservation(reservationID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.reservations, reservationID)
	return nil
}

func (l *fakeLedger) GetReservationByID(reservationID string) (*models.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.reservations[reservationID]
	if !ok {
		return nil, ledgerRepo.ErrNotFound
	}
	return &res, nil
}

func (l *fakeLedger) UpdateReservationStatus(reservationID, fromStatus, toStatus string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.reservations[reservationID]
	if !ok || res.Status != fromStatus {
		return false, nil
	}
	res.Status = toStatus
	l.reservations[reservationID] = res
	return true, nil
}

func (l *fakeLedger) AttachPaymentRef(reservationID, paymentRef string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.reservations[reservationID]
	if !ok {
		return ledgerRepo.ErrNotFound
	}
	res.PaymentRef = paymentRef
	l.reservations[reservationID] = res
	return nil
}

func (l *fakeLedger) InsertLine(line *models.ReservationLine) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failInsertLine != nil {
		return l.failInsertLine
	}
	l.lines[line.ReservationID] = append(l.lines[line.ReservationID], *line)
	return nil
}

func (l *fakeLedger) LinesByReservation(reservationID string) ([]models.ReservationLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failLinesRead != nil {
		return nil, l.failLinesRead
	}
	return append([]models.ReservationLine(nil), l.lines[reservationID]...), nil
}

func (l *fakeLedger) ActiveEntries(providerID string) ([]models.Reservation, []models.ReservationLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var res []models.Reservation
	var lines []models.ReservationLine
	for _, r := range l.reservations {
		if r.ProviderID == providerID && r.Active() {
			res = append(res, r)
			lines = append(lines, l.lines[r.ID]...)
		}
	}
	return res, lines, nil
}

func (l *fakeLedger) ListByProvider(providerID string) ([]models.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Reservation
	for _, r := range l.reservations {
		if r.ProviderID == providerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListByRequester(requesterID string) ([]models.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Reservation
	for _, r := range l.reservations {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *fakeLedger) AcquireUnitHold(hold *models.UnitHold) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.holds[hold.UnitID]; taken {
		return ledgerRepo.ErrUnitHeld
	}
	l.holds[hold.UnitID] = hold.ReservationID
	return nil
}

func (l *fakeLedger) ReleaseUnitHold(unitID, reservationID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.holds[unitID] == reservationID {
		delete(l.holds, unitID)
	}
	return nil
}

func (l *fakeLedger) ReleaseUnitHoldByReservation(reservationID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for unitID, owner := range l.holds {
		if owner == reservationID {
			delete(l.holds, unitID)
		}
	}
	return nil
}

func (l *fakeLedger) EnsureIndexes() error { return nil }

func (l *fakeLedger) holdCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.holds)
}

func (l *fakeLedger) reservationCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.reservations)
}

// recordingNotifier records every published event.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.ChangeEvent
}

func (n *recordingNotifier) Publish(_ context.Context, _ string, event models.ChangeEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) Subscribe(_ context.Context, _ string) (<-chan models.ChangeEvent, func(), error) {
	ch := make(chan models.ChangeEvent)
	return ch, func() { close(ch) }, nil
}

func (n *recordingNotifier) published() []models.ChangeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.ChangeEvent(nil), n.events...)
}

func newTestService(ledger *fakeLedger, cat *fakeCatalog) (*DefaultReservationService, *recordingNotifier) {
	n := &recordingNotifier{}
	svc := &DefaultReservationService{
		Catalog:  cat,
		Ledger:   ledger,
		Notifier: n,
		Logger:   zap.NewNop(),
	}
	return svc, n
}
