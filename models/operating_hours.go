package models

import "time"

// OperatingHours defines a provider's recurring working window for one
// day of the week. Times are minutes from midnight (e.g., 540 for 9:00 AM).
type OperatingHours struct {
	ID         string       `bson:"id" json:"id"`
	ProviderID string       `bson:"provider_id" json:"provider_id"`
	Weekday    time.Weekday `bson:"weekday" json:"weekday"` // 0 = Sunday ... 6 = Saturday
	Start      int          `bson:"start" json:"start"`
	End        int          `bson:"end" json:"end"`
	BreakStart *int         `bson:"break_start,omitempty" json:"break_start,omitempty"`
	BreakEnd   *int         `bson:"break_end,omitempty" json:"break_end,omitempty"`
}

// HasBreak reports whether both break bounds are set.
func (oh OperatingHours) HasBreak() bool {
	return oh.BreakStart != nil && oh.BreakEnd != nil
}

// WeeklyHoursEntry is the client-facing shape for one weekday when a
// provider replaces their schedule.
type WeeklyHoursEntry struct {
	Weekday    time.Weekday `json:"weekday" binding:"min=0,max=6"`
	Start      int          `json:"start" binding:"min=0,max=1440"`
	End        int          `json:"end" binding:"min=0,max=1440"`
	BreakStart *int         `json:"break_start,omitempty"`
	BreakEnd   *int         `json:"break_end,omitempty"`
}

// ReplaceWeeklyHoursRequest wipes and re-creates a provider's weekly
// schedule in one shot. Days omitted here become non-working days.
type ReplaceWeeklyHoursRequest struct {
	Hours []WeeklyHoursEntry `json:"hours" binding:"required"`
}
