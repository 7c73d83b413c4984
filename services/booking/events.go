package booking

import (
	"context"
	"encoding/json"
	"time"

	"agendly/models"
	"agendly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// EventPublisher delivers appointment snapshots to downstream consumers.
// Publication is fire-and-forget: implementations log failures and never
// surface them, because booking success must not depend on notification
// delivery.
type EventPublisher interface {
	Publish(eventType string, appt models.Appointment)
}

// ReminderScheduler enqueues an appointment reminder ahead of its start.
// Best-effort like event publication.
type ReminderScheduler interface {
	ScheduleReminder(appt models.Appointment)
}

// RedisEventPublisher broadcasts events on a Redis pub/sub channel.
type RedisEventPublisher struct {
	Client  *redis.Client
	Channel string
}

func (p *RedisEventPublisher) Publish(eventType string, appt models.Appointment) {
	event := models.AppointmentEvent{
		Type:        eventType,
		Appointment: appt,
		EmittedAt:   time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		utils.GetLogger().Error("failed to marshal appointment event",
			zap.String("type", eventType), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Client.Publish(ctx, p.Channel, payload).Err(); err != nil {
		utils.GetLogger().Error("failed to publish appointment event",
			zap.String("type", eventType),
			zap.String("appointmentId", appt.ID),
			zap.Error(err),
		)
	}
}
