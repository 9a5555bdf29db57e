package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"seatwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AcquireUnitHold claims exclusive occupancy of a unit for a reservation.
// The unique index on unit_holds.unit_id arbitrates concurrent claims: when
// two requests race past the availability check, exactly one insert succeeds
// and the other returns ErrUnitHeld. Holds live as long as the reservation
// is active; a rejection releases them.
func (repo *MongoLedgerRepo) AcquireUnitHold(hold *models.UnitHold) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.holdColl.InsertOne(ctx, hold); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUnitHeld
		}
		return fmt.Errorf("error acquiring hold for unit %s: %w", hold.UnitID, err)
	}
	return nil
}

// ReleaseUnitHold frees a unit's hold. The reservation id is part of the
// filter so a stale release (from a reservation that no longer owns the
// hold) cannot free someone else's claim.
func (repo *MongoLedgerRepo) ReleaseUnitHold(unitID, reservationID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"unit_id": unitID, "reservation_id": reservationID}
	if _, err := repo.holdColl.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("error releasing hold for unit %s: %w", unitID, err)
	}
	return nil
}

// ReleaseUnitHoldByReservation frees all holds owned by a reservation. The
// hold_reservation_idx index serves the lookup.
func (repo *MongoLedgerRepo) ReleaseUnitHoldByReservation(reservationID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"reservation_id": reservationID}
	if _, err := repo.holdColl.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("error releasing holds of reservation %s: %w", reservationID, err)
	}
	return nil
}
