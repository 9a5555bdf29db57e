package catalog

import (
	"context"
	"errors"

	catalogRepo "seatwise/database/repository/catalog"
	ledgerRepo "seatwise/database/repository/ledger"
	"seatwise/models"

	"go.uber.org/zap"
)

// ErrNotOwner is returned when a provider operates on a unit it does not own.
var ErrNotOwner = errors.New("unit belongs to another provider")

// ErrUnitOccupied is returned when deleting a unit that an active
// reservation still references.
var ErrUnitOccupied = errors.New("unit has an active reservation")

// CatalogService is the provider-facing management surface of the unit
// catalog. The reservation subsystem itself only reads the catalog.
type CatalogService interface {
	CreateUnit(ctx context.Context, providerID, label string, unitPrice float64) (*models.ResourceUnit, error)
	UpdateUnit(ctx context.Context, providerID, unitID, label string, unitPrice float64) (*models.ResourceUnit, error)
	DeleteUnit(ctx context.Context, providerID, unitID string) error
	ListUnits(ctx context.Context, providerID string) ([]models.ResourceUnit, error)
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo   catalogRepo.CatalogRepository
	Ledger ledgerRepo.LedgerRepository
	Logger *zap.Logger
}
