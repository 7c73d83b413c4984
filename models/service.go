package models

// Service is the catalog view of a bookable service. The booking engine
// reads it once at creation time and snapshots name/price/currency onto
// the appointment.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	ProviderID      string  `bson:"provider_id" json:"provider_id"`
	Name            string  `bson:"name" json:"name"`
	Price           float64 `bson:"price" json:"price"`
	Currency        string  `bson:"currency" json:"currency"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
}
