package appointmentRepo

import (
	"context"
	"time"

	"agendly/models"
)

// AppointmentRepository is the booking store. Appointments are mutated only
// through the booking state machine; everything else reads. The mutating
// operations take the caller's context so they can join a session
// transaction spanning other stores.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error

	// FindActiveInRange returns non-canceled appointments overlapping
	// [from, to) for a provider, optionally excluding one id (the record
	// being rescheduled). Half-open overlap: start < to && end > from.
	FindActiveInRange(providerID string, from, to time.Time, excludeID string) ([]models.Appointment, error)

	// History queries, ordered by start time descending.
	ListByProvider(providerID string, page, limit int64) ([]models.Appointment, error)
	ListByConsumer(consumerID string, page, limit int64) ([]models.Appointment, error)
}
