package models

import "time"

// Domain event types emitted by the booking state machine.
const (
	EventAppointmentCreated     = "APPOINTMENT_CREATED"
	EventAppointmentCompleted   = "APPOINTMENT_COMPLETED"
	EventAppointmentCanceled    = "APPOINTMENT_CANCELED"
	EventAppointmentRescheduled = "APPOINTMENT_RESCHEDULED"
	EventAppointmentReminder    = "APPOINTMENT_REMINDER"
)

// AppointmentEvent is the fire-and-forget snapshot published for downstream
// consumers (notifications, calendar sync, analytics). Delivery is
// best-effort; booking success never depends on it.
type AppointmentEvent struct {
	Type        string      `json:"type"`
	Appointment Appointment `json:"appointment"`
	EmittedAt   time.Time   `json:"emitted_at"`
}

// ReminderPayload is the asynq task body for appointment reminders.
type ReminderPayload struct {
	AppointmentID string `json:"appointment_id"`
	ConsumerID    string `json:"consumer_id"`
	ProviderID    string `json:"provider_id"`
	StartsAt      string `json:"starts_at"` // RFC3339
}
