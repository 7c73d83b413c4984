package models

import "time"

// TimeBlock is an explicit unavailability window declared by a provider,
// independent of the recurring weekly schedule (vacations, lunch overrides).
type TimeBlock struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	Start      time.Time `bson:"start" json:"start"`
	End        time.Time `bson:"end" json:"end"`
	Reason     string    `bson:"reason" json:"reason"` // e.g., "vacation", "staff meeting"
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// CreateTimeBlockRequest is the payload for blocking out a window.
type CreateTimeBlockRequest struct {
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
	Reason string    `json:"reason"`
}
