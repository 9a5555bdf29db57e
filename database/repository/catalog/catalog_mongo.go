package catalogRepo

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

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	unitColl *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoCatalogRepo{
		unitColl: db.Collection("resource_units"),
	}
}

// Create inserts a new resource unit document.
func (repo *MongoCatalogRepo) Create(unit *models.ResourceUnit) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.unitColl.InsertOne(ctx, unit); err != nil {
		return fmt.Errorf("error creating resource unit: %w", err)
	}
	return nil
}

// GetByID retrieves a resource unit document by ID.
func (repo *MongoCatalogRepo) GetByID(unitID string) (*models.ResourceUnit, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var unit models.ResourceUnit
	filter := bson.M{"id": unitID}
	if err := repo.unitColl.FindOne(ctx, filter).Decode(&unit); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching resource unit with id %s: %w", unitID, err)
	}
	return &unit, nil
}

// Update modifies an existing resource unit document.
func (repo *MongoCatalogRepo) Update(unit *models.ResourceUnit) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": unit.ID, "provider_id": unit.ProviderID}
	update := bson.M{"$set": bson.M{
		"label":      unit.Label,
		"unit_price": unit.UnitPrice,
	}}
	res, err := repo.unitColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating resource unit %s: %w", unit.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("resource unit %s not found for provider %s", unit.ID, unit.ProviderID)
	}
	return nil
}

// Delete removes a resource unit document.
func (repo *MongoCatalogRepo) Delete(unitID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.unitColl.DeleteOne(ctx, bson.M{"id": unitID})
	if err != nil {
		return fmt.Errorf("error deleting resource unit %s: %w", unitID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("resource unit %s not found", unitID)
	}
	return nil
}

// ListByProvider retrieves all resource units belonging to a provider.
func (repo *MongoCatalogRepo) ListByProvider(providerID string) ([]models.ResourceUnit, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.unitColl.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("error listing resource units for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var units []models.ResourceUnit
	for cursor.Next(ctx) {
		var u models.ResourceUnit
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("error decoding resource unit: %w", err)
		}
		units = append(units, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return units, nil
}
