package tasks

import (
	"encoding/json"
	"time"

	"agendly/models"
	"agendly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the asynq task for an appointment reminder and the
// options that delay it until fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues reminders on the asynq queue. Enqueueing is
// best-effort: failures are logged and never block booking.
type AsynqReminderScheduler struct {
	Client      *asynq.Client
	LeadMinutes int
}

func (s *AsynqReminderScheduler) ScheduleReminder(appt models.Appointment) {
	fireAt := appt.Start.Add(-time.Duration(s.LeadMinutes) * time.Minute)
	if !fireAt.After(time.Now()) {
		// Appointment starts within the lead window; nothing to remind.
		return
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		ConsumerID:    appt.ConsumerID,
		ProviderID:    appt.ProviderID,
		StartsAt:      appt.Start.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		utils.GetLogger().Error("failed to build reminder task",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}

	if _, err := s.Client.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("failed to enqueue reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}
	utils.GetLogger().Info("reminder enqueued",
		zap.String("appointmentId", appt.ID),
		zap.Time("fireAt", fireAt),
	)
}
