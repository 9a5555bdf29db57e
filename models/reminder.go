package models

// ReminderPayload is the asynq task payload for a delayed "reservation is
// still awaiting your decision" push to a provider.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
	ProviderID    string `json:"providerId"`
	UnitLabel     string `json:"unitLabel"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}
