package models

// UnitStatus is the derived display status of a resource unit. It is never
// stored; it is recomputed from the active ledger entries.
type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitPending   UnitStatus = "pending"
	UnitBooked    UnitStatus = "booked"
)

// UnitStatusView pairs a catalog unit with its resolved status for display.
type UnitStatusView struct {
	Unit   ResourceUnit `json:"unit"`
	Status UnitStatus   `json:"status"`
}
