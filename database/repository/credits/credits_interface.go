package creditsRepo

import (
	"context"
	"errors"
	"time"

	"agendly/models"
)

// ErrNoEligibleBalance is returned by RedeemEarliestExpiring when the
// consumer has no non-expired balance with credits left for the tuple.
var ErrNoEligibleBalance = errors.New("no eligible package balance")

// CreditsRepository persists prepaid package balances. Decrements are
// conditional single-document updates so two concurrent redemptions can
// never race the same last credit below zero.
type CreditsRepository interface {
	Create(balance *models.PackageBalance) error
	GetByID(id string) (*models.PackageBalance, error)

	// RedeemEarliestExpiring atomically decrements one credit from the
	// earliest-expiring eligible balance and returns the updated document.
	// A session context enrolls the decrement in the caller's transaction.
	RedeemEarliestExpiring(ctx context.Context, consumerID, providerID, serviceID string, now time.Time) (*models.PackageBalance, error)

	// Refund atomically restores one credit. Expiry does not gate refunds.
	Refund(ctx context.Context, balanceID string) error

	ListByConsumer(consumerID string) ([]models.PackageBalance, error)

	// DeleteExhaustedExpired removes balances that expired before the cutoff
	// and hold no credits. Used by the maintenance worker.
	DeleteExhaustedExpired(before time.Time) (int64, error)
}
