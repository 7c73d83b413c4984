package scheduling

import (
	"fmt"
	"time"

	"agendly/models"
)

// overlaps is the half-open interval rule: [s1,e1) and [s2,e2) conflict
// iff s1 < e2 && e1 > s2. Every conflict decision in the engine reduces to
// this predicate.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

func overlapsBlocks(start, end time.Time, blocks []models.TimeBlock) bool {
	for _, b := range blocks {
		if overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

func overlapsAppointments(start, end time.Time, appts []models.Appointment, excludeID string) bool {
	for _, a := range appts {
		if a.ID == excludeID || a.Canceled() {
			continue
		}
		if overlaps(start, end, a.Start, a.End) {
			return true
		}
	}
	return false
}

// HasConflict checks [start, end) against the provider's time blocks and
// non-canceled appointments.
func (se *DefaultSchedulingEngine) HasConflict(providerID string, start, end time.Time, excludeAppointmentID string) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidTimeRange
	}

	blocks, err := se.Schedule.GetTimeBlocksInRange(providerID, start, end)
	if err != nil {
		return false, fmt.Errorf("error loading time blocks: %w", err)
	}
	if overlapsBlocks(start, end, blocks) {
		return true, nil
	}

	appts, err := se.Appointments.FindActiveInRange(providerID, start, end, excludeAppointmentID)
	if err != nil {
		return false, fmt.Errorf("error loading appointments: %w", err)
	}
	return overlapsAppointments(start, end, appts, excludeAppointmentID), nil
}
