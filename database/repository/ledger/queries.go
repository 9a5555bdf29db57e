package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"seatwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActiveEntries retrieves all active (pending_approval or approved)
// reservations for a provider together with their line items. This is the
// input set of the status resolver.
func (repo *MongoLedgerRepo) ActiveEntries(providerID string) ([]models.Reservation, []models.ReservationLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"status":      bson.M{"$in": bson.A{models.StatusPendingApproval, models.StatusApproved}},
	}
	reservations, err := repo.findReservations(ctx, filter, nil)
	if err != nil {
		return nil, nil, err
	}

	if len(reservations) == 0 {
		return nil, nil, nil
	}

	ids := make(bson.A, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}

	cursor, err := repo.lineColl.Find(ctx, bson.M{"reservation_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching lines for active reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []models.ReservationLine
	for cursor.Next(ctx) {
		var l models.ReservationLine
		if err := cursor.Decode(&l); err != nil {
			return nil, nil, fmt.Errorf("error decoding reservation line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := cursor.Err(); err != nil {
		return nil, nil, fmt.Errorf("cursor error: %w", err)
	}

	return reservations, lines, nil
}

// ListByProvider retrieves all reservations addressed to a provider, newest first.
func (repo *MongoLedgerRepo) ListByProvider(providerID string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return repo.findReservations(ctx, bson.M{"provider_id": providerID}, opts)
}

// ListByRequester retrieves all reservations made by a requester, newest first.
func (repo *MongoLedgerRepo) ListByRequester(requesterID string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return repo.findReservations(ctx, bson.M{"requester_id": requesterID}, opts)
}

func (repo *MongoLedgerRepo) findReservations(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Reservation, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = repo.reservationColl.Find(ctx, filter, opts)
	} else {
		cursor, err = repo.reservationColl.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("error finding reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	for cursor.Next(ctx) {
		var r models.Reservation
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return reservations, nil
}
