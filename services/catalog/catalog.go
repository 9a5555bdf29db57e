package catalog

import (
	"context"
	"fmt"
	"time"

	"seatwise/models"

	"github.com/google/uuid"
)

// CreateUnit adds a new bookable unit to the provider's catalog.
func (s *DefaultCatalogService) CreateUnit(ctx context.Context, providerID, label string, unitPrice float64) (*models.ResourceUnit, error) {
	if label == "" {
		return nil, fmt.Errorf("unit label is required")
	}
	if unitPrice < 0 {
		return nil, fmt.Errorf("unit price cannot be negative")
	}

	unit := &models.ResourceUnit{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Label:      label,
		UnitPrice:  unitPrice,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.Create(unit); err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

// UpdateUnit edits a unit's label or price. Only the owner may edit.
func (s *DefaultCatalogService) UpdateUnit(ctx context.Context, providerID, unitID, label string, unitPrice float64) (*models.ResourceUnit, error) {
	unit, err := s.Repo.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit.ProviderID != providerID {
		return nil, ErrNotOwner
	}

	if label != "" {
		unit.Label = label
	}
	if unitPrice >= 0 {
		unit.UnitPrice = unitPrice
	}
	if err := s.Repo.Update(unit); err != nil {
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}
	return unit, nil
}

// DeleteUnit removes a unit from the catalog. A unit referenced by an
// active reservation cannot be removed; rejecting or externally cancelling
// the reservation first frees it.
func (s *DefaultCatalogService) DeleteUnit(ctx context.Context, providerID, unitID string) error {
	unit, err := s.Repo.GetByID(unitID)
	if err != nil {
		return err
	}
	if unit.ProviderID != providerID {
		return ErrNotOwner
	}

	_, lines, err := s.Ledger.ActiveEntries(providerID)
	if err != nil {
		return fmt.Errorf("failed to check active reservations: %w", err)
	}
	for _, line := range lines {
		if line.UnitID == unitID {
			return ErrUnitOccupied
		}
	}

	return s.Repo.Delete(unitID)
}

// ListUnits lists the provider's catalog.
func (s *DefaultCatalogService) ListUnits(ctx context.Context, providerID string) ([]models.ResourceUnit, error) {
	return s.Repo.ListByProvider(providerID)
}
