package scheduling

import (
	"fmt"
	"time"

	"agendly/models"
	"agendly/utils"
)

// GetAvailableSlots computes the bookable grid for a provider over the
// inclusive date range [from, to].
//
// The grid is fixed: candidates start at the day's opening time and advance
// by exactly durationMinutes, stopping once a slot would end past closing
// (a slot ending exactly at closing time is allowed). A candidate that
// collides with the break window, a time block or an appointment is
// discarded, but the cursor still advances by the duration; gaps are never
// backfilled with offset start times.
//
// The computation is stateless and deterministic: the same stores yield the
// same ordered sequence on every call.
func (se *DefaultSchedulingEngine) GetAvailableSlots(providerID string, from, to time.Time, durationMinutes int) ([]models.AvailableSlot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	firstDay := utils.DayStart(from)
	lastDay := utils.DayStart(to)
	if lastDay.Before(firstDay) {
		return nil, ErrInvalidTimeRange
	}
	rangeEnd := lastDay.AddDate(0, 0, 1)

	hours, err := se.Schedule.GetOperatingHours(providerID)
	if err != nil {
		return nil, fmt.Errorf("error loading operating hours: %w", err)
	}
	hoursByWeekday := make(map[time.Weekday]models.OperatingHours, len(hours))
	for _, oh := range hours {
		hoursByWeekday[oh.Weekday] = oh
	}

	// Bulk-load everything that can block a slot, once for the whole range.
	blocks, err := se.Schedule.GetTimeBlocksInRange(providerID, firstDay, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("error loading time blocks: %w", err)
	}
	appts, err := se.Appointments.FindActiveInRange(providerID, firstDay, rangeEnd, "")
	if err != nil {
		return nil, fmt.Errorf("error loading appointments: %w", err)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	var slots []models.AvailableSlot

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		oh, works := hoursByWeekday[day.Weekday()]
		if !works {
			continue
		}
		dayStr := day.Format("2006-01-02")

		for cursor := oh.Start; cursor+durationMinutes <= oh.End; cursor += durationMinutes {
			slotEnd := cursor + durationMinutes

			// Break window, half-open overlap in minutes from midnight.
			if oh.HasBreak() && cursor < *oh.BreakEnd && slotEnd > *oh.BreakStart {
				continue
			}

			absStart := day.Add(time.Duration(cursor) * time.Minute)
			absEnd := absStart.Add(duration)
			if overlapsBlocks(absStart, absEnd, blocks) || overlapsAppointments(absStart, absEnd, appts, "") {
				continue
			}

			slots = append(slots, models.AvailableSlot{
				Date:  dayStr,
				Start: cursor,
				End:   slotEnd,
			})
		}
	}

	return slots, nil
}
