package booking

import (
	"context"
	"time"

	appointmentRepo "agendly/database/repository/appointment"
	"agendly/models"
	"agendly/services/catalog"
	"agendly/services/credits"
	"agendly/services/scheduling"
	"agendly/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// Actor roles recognized by the state machine.
const (
	RoleProvider = "provider"
	RoleConsumer = "consumer"
)

// Actor identifies who is invoking a transition. Ownership checks compare
// role and id against the appointment record.
type Actor struct {
	ID   string
	Role string
}

// AppointmentService is the booking state machine. All appointment
// mutations in the system flow through these transitions.
type AppointmentService interface {
	Create(actor Actor, req models.CreateAppointmentRequest) (*models.Appointment, error)
	Complete(actor Actor, appointmentID string) (*models.Appointment, error)
	Cancel(actor Actor, appointmentID string) (*models.Appointment, error)
	Reschedule(actor Actor, appointmentID string, newStart time.Time) (*models.Appointment, error)

	ProviderHistory(providerID string, page, limit int64) ([]models.Appointment, error)
	ConsumerHistory(consumerID string, page, limit int64) ([]models.Appointment, error)
}

// TxRunner executes fn inside one storage transaction: every write issued
// through the session context commits together or not at all. Production
// wiring uses database.WithTransaction.
type TxRunner func(ctx context.Context, fn func(sc mongo.SessionContext) error) error

// DefaultAppointmentService implements AppointmentService.
type DefaultAppointmentService struct {
	Repo      appointmentRepo.AppointmentRepository
	Scheduler scheduling.SchedulingEngine
	Catalog   catalog.CatalogService
	Ledger    credits.LedgerService
	Tx        TxRunner
	Events    EventPublisher      // optional
	Reminders ReminderScheduler   // optional
	Locks     *utils.ProviderLocker
	Now       func() time.Time // override in tests; nil means time.Now
}

func (svc *DefaultAppointmentService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

func (svc *DefaultAppointmentService) emit(eventType string, appt models.Appointment) {
	if svc.Events != nil {
		svc.Events.Publish(eventType, appt)
	}
}
