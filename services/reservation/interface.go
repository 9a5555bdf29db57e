package reservation

import (
	"context"

	catalogRepo "seatwise/database/repository/catalog"
	ledgerRepo "seatwise/database/repository/ledger"
	"seatwise/models"
	"seatwise/services/notifier"
	"seatwise/services/status"

	"go.uber.org/zap"
)

// CreateRequest carries the inputs of a reservation request.
type CreateRequest struct {
	ProviderID    string
	UnitID        string
	RequesterID   string
	ScheduledDate string
	ScheduledSlot string
}

// ReminderScheduler enqueues a delayed "still pending" reminder for the
// provider. Implemented on asynq; a nil scheduler disables reminders.
type ReminderScheduler interface {
	ScheduleApprovalReminder(ctx context.Context, payload models.ReminderPayload) error
}

// ReservationService is the write surface of the ledger: requests are
// created here and decided here, nowhere else.
type ReservationService interface {
	Create(ctx context.Context, req CreateRequest) (*models.Reservation, error)
	Decide(ctx context.Context, reservationID, target, actingProviderID string) (*models.Reservation, error)
	GetReservation(ctx context.Context, reservationID string) (*models.Reservation, []models.ReservationLine, error)
	ListForProvider(ctx context.Context, providerID string) ([]models.Reservation, error)
	ListForRequester(ctx context.Context, requesterID string) ([]models.Reservation, error)
	UnitStatuses(ctx context.Context, providerID string) ([]models.UnitStatusView, error)
	AttachPaymentRef(ctx context.Context, reservationID, requesterID, paymentRef string) error
}

// DefaultReservationService implements ReservationService.
type DefaultReservationService struct {
	Catalog  catalogRepo.CatalogRepository
	Ledger   ledgerRepo.LedgerRepository
	Notifier notifier.ChangeNotifier
	Push     notifier.PushSender
	Cache    *status.SnapshotCache
	Reminder ReminderScheduler
	Logger   *zap.Logger
}
