package scheduleRepo

import (
	"time"

	"agendly/models"
)

// ScheduleRepository persists a provider's recurring weekly hours and
// ad-hoc time blocks. The booking flow only ever reads from it.
type ScheduleRepository interface {
	// GetOperatingHours returns all weekday entries for a provider.
	GetOperatingHours(providerID string) ([]models.OperatingHours, error)
	// ReplaceOperatingHours wipes and re-inserts the provider's weekly
	// schedule as a single atomic swap.
	ReplaceOperatingHours(providerID string, hours []models.OperatingHours) error

	CreateTimeBlock(block *models.TimeBlock) error
	DeleteTimeBlock(providerID, blockID string) error
	// GetTimeBlocksInRange returns blocks overlapping [from, to).
	GetTimeBlocksInRange(providerID string, from, to time.Time) ([]models.TimeBlock, error)
}
