package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"seatwise/config"
	"seatwise/database"
	"seatwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLedgerRepo implements LedgerRepository using MongoDB.
type MongoLedgerRepo struct {
	reservationColl *mongo.Collection
	lineColl        *mongo.Collection
	holdColl        *mongo.Collection
}

// NewMongoLedgerRepo constructs a new instance of MongoLedgerRepo.
func NewMongoLedgerRepo() LedgerRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoLedgerRepo{
		reservationColl: db.Collection("reservations"),
		lineColl:        db.Collection("reservation_lines"),
		holdColl:        db.Collection("unit_holds"),
	}
}

// InsertReservation inserts a new reservation header document.
func (repo *MongoLedgerRepo) InsertReservation(res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.reservationColl.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("error inserting reservation: %w", err)
	}
	return nil
}

// DeleteReservation removes a reservation header. Compensation path only.
func (repo *MongoLedgerRepo) DeleteReservation(reservationID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.reservationColl.DeleteOne(ctx, bson.M{"id": reservationID}); err != nil {
		return fmt.Errorf("error deleting reservation %s: %w", reservationID, err)
	}
	return nil
}

// GetReservationByID retrieves a reservation header by ID.
func (repo *MongoLedgerRepo) GetReservationByID(reservationID string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var res models.Reservation
	if err := repo.reservationColl.FindOne(ctx, bson.M{"id": reservationID}).Decode(&res); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reservation %s: %w", reservationID, err)
	}
	return &res, nil
}

// UpdateReservationStatus transitions a reservation's status only if it is
// currently in fromStatus. The conditional filter makes the transition
// atomic: concurrent or repeated decisions on the same reservation match
// zero documents and report false.
func (repo *MongoLedgerRepo) UpdateReservationStatus(reservationID, fromStatus, toStatus string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": reservationID, "status": fromStatus}
	update := bson.M{"$set": bson.M{"status": toStatus}}
	res, err := repo.reservationColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error updating status of reservation %s: %w", reservationID, err)
	}
	return res.MatchedCount > 0, nil
}

// AttachPaymentRef stores an opaque payment reference on a reservation.
// The payment collaborator owns the reference's meaning; this subsystem
// never validates it.
func (repo *MongoLedgerRepo) AttachPaymentRef(reservationID, paymentRef string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": reservationID}
	update := bson.M{"$set": bson.M{"payment_ref": paymentRef}}
	res, err := repo.reservationColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error attaching payment ref to reservation %s: %w", reservationID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertLine inserts a reservation line item.
func (repo *MongoLedgerRepo) InsertLine(line *models.ReservationLine) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.lineColl.InsertOne(ctx, line); err != nil {
		return fmt.Errorf("error inserting reservation line: %w", err)
	}
	return nil
}

// LinesByReservation retrieves the line items of a reservation.
func (repo *MongoLedgerRepo) LinesByReservation(reservationID string) ([]models.ReservationLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.lineColl.Find(ctx, bson.M{"reservation_id": reservationID})
	if err != nil {
		return nil, fmt.Errorf("error fetching lines for reservation %s: %w", reservationID, err)
	}
	defer cursor.Close(ctx)

	var lines []models.ReservationLine
	for cursor.Next(ctx) {
		var l models.ReservationLine
		if err := cursor.Decode(&l); err != nil {
			return nil, fmt.Errorf("error decoding reservation line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return lines, nil
}
