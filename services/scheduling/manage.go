package scheduling

import (
	"fmt"
	"time"

	"agendly/models"
	"agendly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReplaceWeeklyHours validates and swaps a provider's whole weekly
// schedule. The store performs delete-all-then-insert atomically, so
// partial weeks are never observable; days absent from the request become
// non-working days.
func (se *DefaultSchedulingEngine) ReplaceWeeklyHours(providerID string, entries []models.WeeklyHoursEntry) error {
	seen := make(map[time.Weekday]bool, len(entries))
	hours := make([]models.OperatingHours, 0, len(entries))

	for _, e := range entries {
		if seen[e.Weekday] {
			return fmt.Errorf("duplicate entry for weekday %s: %w", e.Weekday, ErrInvalidTimeRange)
		}
		seen[e.Weekday] = true

		if e.Start >= e.End {
			return fmt.Errorf("weekday %s: hours %s-%s: %w", e.Weekday,
				utils.MinutesToClock(e.Start), utils.MinutesToClock(e.End), ErrInvalidTimeRange)
		}
		if (e.BreakStart == nil) != (e.BreakEnd == nil) {
			return fmt.Errorf("weekday %s: break requires both bounds: %w", e.Weekday, ErrInvalidTimeRange)
		}
		if e.BreakStart != nil {
			if *e.BreakStart >= *e.BreakEnd {
				return fmt.Errorf("weekday %s: break window %s-%s: %w", e.Weekday,
					utils.MinutesToClock(*e.BreakStart), utils.MinutesToClock(*e.BreakEnd), ErrInvalidTimeRange)
			}
			if *e.BreakStart < e.Start || *e.BreakEnd > e.End {
				return fmt.Errorf("weekday %s: break must lie within operating hours: %w", e.Weekday, ErrInvalidTimeRange)
			}
		}

		hours = append(hours, models.OperatingHours{
			ID:         uuid.New().String(),
			ProviderID: providerID,
			Weekday:    e.Weekday,
			Start:      e.Start,
			End:        e.End,
			BreakStart: e.BreakStart,
			BreakEnd:   e.BreakEnd,
		})
	}

	if err := se.Schedule.ReplaceOperatingHours(providerID, hours); err != nil {
		return err
	}
	utils.GetLogger().Info("weekly hours replaced",
		zap.String("providerId", providerID),
		zap.Int("days", len(hours)),
	)
	return nil
}

// CreateTimeBlock records an ad-hoc unavailability window.
func (se *DefaultSchedulingEngine) CreateTimeBlock(providerID string, req models.CreateTimeBlockRequest) (*models.TimeBlock, error) {
	if !req.End.After(req.Start) {
		return nil, ErrInvalidTimeRange
	}
	block := &models.TimeBlock{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Start:      req.Start,
		End:        req.End,
		Reason:     req.Reason,
		CreatedAt:  time.Now(),
	}
	if err := se.Schedule.CreateTimeBlock(block); err != nil {
		return nil, err
	}
	return block, nil
}

// DeleteTimeBlock removes a block owned by the provider.
func (se *DefaultSchedulingEngine) DeleteTimeBlock(providerID, blockID string) error {
	return se.Schedule.DeleteTimeBlock(providerID, blockID)
}
