package tasks

import (
	"context"
	"encoding/json"
	"time"

	"seatwise/models"

	"github.com/hibiken/asynq"
)

const TypeApprovalReminder = "reservation:approval_reminder"

// NewApprovalReminderTask builds the delayed reminder task for a pending
// reservation.
func NewApprovalReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeApprovalReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues approval reminders on asynq. It satisfies
// the reservation service's ReminderScheduler interface.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Delay  time.Duration
}

// ScheduleApprovalReminder enqueues a reminder that fires after the
// configured delay. The worker re-checks the reservation before pushing, so
// reminders for already-decided reservations are dropped there.
func (s *AsynqReminderScheduler) ScheduleApprovalReminder(ctx context.Context, payload models.ReminderPayload) error {
	task, opts, err := NewApprovalReminderTask(payload, time.Now().Add(s.Delay))
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
