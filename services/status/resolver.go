// Package status derives per-unit display statuses from the reservation
// ledger. Statuses are never stored; every consumer recomputes them from the
// same inputs so server and clients cannot drift apart.
package status

import (
	"sort"

	"seatwise/models"
	"seatwise/utils"

	"go.uber.org/zap"
)

// Resolve folds the active ledger entries over a provider's catalog and
// returns exactly one status per unit. Approved lines mark a unit booked,
// pending_approval lines mark it pending, and units untouched by any active
// line are available.
//
// The ledger invariant guarantees at most one active line per unit. Resolve
// does not assume it: when multiple active lines reference the same unit it
// logs the inconsistency and keeps the more restrictive status (booked wins
// over pending) instead of crashing. The result depends only on the inputs,
// never on their order.
func Resolve(units []models.ResourceUnit, reservations []models.Reservation, lines []models.ReservationLine) map[string]models.UnitStatus {
	byReservation := make(map[string]string, len(reservations))
	for _, r := range reservations {
		if r.Active() {
			byReservation[r.ID] = r.Status
		}
	}

	derived := make(map[string]models.UnitStatus, len(lines))
	seen := make(map[string]int, len(lines))
	for _, line := range lines {
		resStatus, ok := byReservation[line.ReservationID]
		if !ok {
			continue // line of a terminal or unknown reservation
		}

		unitStatus := models.UnitPending
		if resStatus == models.StatusApproved {
			unitStatus = models.UnitBooked
		}

		seen[line.UnitID]++
		if seen[line.UnitID] > 1 {
			utils.GetLogger().Warn("multiple active reservation lines reference one unit",
				zap.String("unitId", line.UnitID),
				zap.Int("activeLines", seen[line.UnitID]),
			)
			// Keep the more restrictive status.
			if derived[line.UnitID] == models.UnitBooked {
				continue
			}
		}
		derived[line.UnitID] = unitStatus
	}

	resolved := make(map[string]models.UnitStatus, len(units))
	for _, u := range units {
		if s, ok := derived[u.ID]; ok {
			resolved[u.ID] = s
		} else {
			resolved[u.ID] = models.UnitAvailable
		}
	}
	return resolved
}

// ResolveViews pairs every catalog unit with its resolved status, sorted by
// label for stable display.
func ResolveViews(units []models.ResourceUnit, reservations []models.Reservation, lines []models.ReservationLine) []models.UnitStatusView {
	resolved := Resolve(units, reservations, lines)

	views := make([]models.UnitStatusView, 0, len(units))
	for _, u := range units {
		views = append(views, models.UnitStatusView{Unit: u, Status: resolved[u.ID]})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Unit.Label < views[j].Unit.Label
	})
	return views
}
