package models

import "time"

// Appointment statuses. Reschedule does not produce a terminal status: a
// moved appointment stays "scheduled" and carries the Rescheduled flag.
const (
	StatusScheduled          = "scheduled"
	StatusCompleted          = "completed"
	StatusCanceledByProvider = "canceled_by_provider"
	StatusCanceledByPatient  = "canceled_by_patient"
)

// Payment methods accepted at booking time.
const (
	PaymentPackageRedemption = "package_redemption"
	PaymentCash              = "cash"
	PaymentInsurance         = "insurance"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusSettled  = "settled"
	PaymentStatusRefunded = "refunded"
)

// Appointment is a confirmed booking record. ServiceName, Price and
// Currency are snapshotted from the catalog at creation time and never
// re-read afterwards.
type Appointment struct {
	ID               string     `bson:"id" json:"id"`
	ProviderID       string     `bson:"provider_id" json:"provider_id"`
	ConsumerID       string     `bson:"consumer_id" json:"consumer_id"`
	ServiceID        string     `bson:"service_id" json:"service_id"`
	ServiceName      string     `bson:"service_name" json:"service_name"`
	Price            float64    `bson:"price" json:"price"`
	Currency         string     `bson:"currency" json:"currency"`
	Start            time.Time  `bson:"start" json:"start"`
	End              time.Time  `bson:"end" json:"end"`
	Status           string     `bson:"status" json:"status"`
	PaymentMethod    string     `bson:"payment_method" json:"payment_method"`
	PaymentStatus    string     `bson:"payment_status" json:"payment_status"`
	AmountPaid       float64    `bson:"amount_paid" json:"amount_paid"`
	PackageBalanceID string     `bson:"package_balance_id,omitempty" json:"package_balance_id,omitempty"`
	Rescheduled      bool       `bson:"rescheduled,omitempty" json:"rescheduled,omitempty"`
	RescheduledAt    *time.Time `bson:"rescheduled_at,omitempty" json:"rescheduled_at,omitempty"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updated_at"`
}

// Canceled reports whether the appointment is in either canceled state.
// Canceled appointments no longer occupy their time range.
func (a Appointment) Canceled() bool {
	return a.Status == StatusCanceledByProvider || a.Status == StatusCanceledByPatient
}

// CreateAppointmentRequest is the booking payload.
type CreateAppointmentRequest struct {
	ProviderID    string    `json:"provider_id" binding:"required"`
	ServiceID     string    `json:"service_id" binding:"required"`
	Start         time.Time `json:"start" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required,oneof=package_redemption cash insurance"`
}

// RescheduleAppointmentRequest moves an appointment, preserving duration.
type RescheduleAppointmentRequest struct {
	Start time.Time `json:"start" binding:"required"`
}
