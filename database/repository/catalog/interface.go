package catalogRepo

import (
	"errors"

	"seatwise/models"
)

// ErrNotFound is returned when a requested resource unit does not exist. A
// miss is a definite answer, distinct from a storage fault.
var ErrNotFound = errors.New("resource unit not found")

// CatalogRepository manages the authoritative list of bookable units for a
// provider. Units are read-mostly from the reservation subsystem's side;
// only the owning provider mutates them.
type CatalogRepository interface {
	Create(unit *models.ResourceUnit) error
	GetByID(unitID string) (*models.ResourceUnit, error)
	Update(unit *models.ResourceUnit) error
	Delete(unitID string) error
	ListByProvider(providerID string) ([]models.ResourceUnit, error)
	EnsureIndexes() error
}
