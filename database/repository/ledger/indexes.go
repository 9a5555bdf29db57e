// File: database/repository/ledger/indexes.go
package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the ledger collections.
// The unique hold index is load-bearing: it is what turns the check-then-act
// sequence into exactly-one-winner semantics.
func (repo *MongoLedgerRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reservationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Resolver input query: active reservations per provider
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("provider_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "requester_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("requester_created_idx"),
		},
	}
	if _, err := repo.reservationColl.Indexes().CreateMany(ctx, reservationIndexes); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}

	lineIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reservation_id", Value: 1}},
			Options: options.Index().SetName("reservation_idx"),
		},
		{
			Keys:    bson.D{{Key: "unit_id", Value: 1}},
			Options: options.Index().SetName("unit_idx"),
		},
	}
	if _, err := repo.lineColl.Indexes().CreateMany(ctx, lineIndexes); err != nil {
		return fmt.Errorf("failed to create reservation line indexes: %w", err)
	}

	holdIndexes := []mongo.IndexModel{
		// One active claim per unit, enforced by the storage layer.
		{
			Keys:    bson.D{{Key: "unit_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_unit_hold"),
		},
		{
			Keys:    bson.D{{Key: "reservation_id", Value: 1}},
			Options: options.Index().SetName("hold_reservation_idx"),
		},
	}
	if _, err := repo.holdColl.Indexes().CreateMany(ctx, holdIndexes); err != nil {
		return fmt.Errorf("failed to create unit hold indexes: %w", err)
	}

	return nil
}
