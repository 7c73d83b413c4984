package scheduling

import (
	"time"

	appointmentRepo "agendly/database/repository/appointment"
	scheduleRepo "agendly/database/repository/schedule"

	"agendly/models"
)

// SchedulingEngine computes bookable slots and answers conflict queries.
// HasConflict is the single source of truth for the overlap rule: the slot
// computer and the booking state machine both go through it (or its
// underlying predicate), never through a reimplementation.
type SchedulingEngine interface {
	// GetAvailableSlots computes the ordered candidate start times for a
	// provider over [from, to] (calendar dates, inclusive) at the given
	// service duration.
	GetAvailableSlots(providerID string, from, to time.Time, durationMinutes int) ([]models.AvailableSlot, error)

	// HasConflict reports whether [start, end) overlaps any time block or
	// non-canceled appointment of the provider, excluding the appointment
	// with excludeAppointmentID when rescheduling.
	HasConflict(providerID string, start, end time.Time, excludeAppointmentID string) (bool, error)

	// Schedule management.
	ReplaceWeeklyHours(providerID string, entries []models.WeeklyHoursEntry) error
	CreateTimeBlock(providerID string, req models.CreateTimeBlockRequest) (*models.TimeBlock, error)
	DeleteTimeBlock(providerID, blockID string) error
}

// DefaultSchedulingEngine is our production implementation.
type DefaultSchedulingEngine struct {
	Schedule     scheduleRepo.ScheduleRepository
	Appointments appointmentRepo.AppointmentRepository
}
