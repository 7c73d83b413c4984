package models

import "time"

// PackageBalance is a prepaid credit bucket tied to one consumer, provider
// and service. RemainingCredits never goes below zero; redemption prefers
// the earliest-expiring eligible balance.
type PackageBalance struct {
	ID               string    `bson:"id" json:"id"`
	ConsumerID       string    `bson:"consumer_id" json:"consumer_id"`
	ProviderID       string    `bson:"provider_id" json:"provider_id"`
	ServiceID        string    `bson:"service_id" json:"service_id"`
	RemainingCredits int       `bson:"remaining_credits" json:"remaining_credits"`
	ExpiresAt        time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

// GrantPackageBalanceRequest creates a new credit bucket, typically after
// an upstream package purchase settles.
type GrantPackageBalanceRequest struct {
	ConsumerID string    `json:"consumer_id" binding:"required"`
	ProviderID string    `json:"provider_id" binding:"required"`
	ServiceID  string    `json:"service_id" binding:"required"`
	Credits    int       `json:"credits" binding:"required,min=1"`
	ExpiresAt  time.Time `json:"expires_at" binding:"required"`
}
