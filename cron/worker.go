package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"seatwise/config"
	ledgerRepo "seatwise/database/repository/ledger"
	"seatwise/models"
	"seatwise/services/notifier"
	"seatwise/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(ledger ledgerRepo.LedgerRepository, push notifier.PushSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeApprovalReminder, handleApprovalReminder(ledger, push))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleApprovalReminder(ledger ledgerRepo.LedgerRepository, push notifier.PushSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		// The reservation may have been decided since the task was
		// enqueued; only still-pending ones warrant a nudge.
		res, err := ledger.GetReservationByID(p.ReservationID)
		if err != nil {
			log.Printf("[ReminderHandler] Could not load reservation %s: %v", p.ReservationID, err)
			return nil
		}
		if res.Status != models.StatusPendingApproval {
			return nil
		}

		data := map[string]string{
			"type":          "approval_reminder",
			"reservationId": p.ReservationID,
			"unitLabel":     p.UnitLabel,
		}
		if err := push.SendPush(ctx, p.ProviderID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] Failed to send reminder push: %v", err)
			return err
		}
		return nil
	}
}
