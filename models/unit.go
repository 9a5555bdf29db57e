package models

import "time"

// ResourceUnit is a single bookable unit (e.g. a numbered library seat)
// belonging to a provider's catalog.
type ResourceUnit struct {
	ID         string    `bson:"id" json:"id"`                   // Unique unit identifier (UUID)
	ProviderID string    `bson:"provider_id" json:"provider_id"` // Owning provider
	Label      string    `bson:"label" json:"label"`             // Human-facing identifier, e.g. "7"
	UnitPrice  float64   `bson:"unit_price" json:"unit_price"`   // Price per reservation
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
