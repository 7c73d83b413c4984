package credits

import (
	"context"
	"errors"
	"fmt"
	"time"

	creditsRepo "agendly/database/repository/credits"
	"agendly/models"
	"agendly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoCreditsAvailable means no non-expired balance with credits left
// exists for the (consumer, provider, service) tuple.
var ErrNoCreditsAvailable = errors.New("no credits available")

// ErrBalanceNotFound means the referenced balance id is unknown.
var ErrBalanceNotFound = errors.New("package balance not found")

// LedgerService exposes the prepaid-credit ledger. Redeem and Refund take
// the caller's context so the booking state machine can run them inside
// the same session transaction as its own writes.
type LedgerService interface {
	// Redeem decrements one credit from the earliest-expiring eligible
	// balance and returns the balance it hit.
	Redeem(ctx context.Context, consumerID, providerID, serviceID string) (*models.PackageBalance, error)
	// Refund restores one credit. Works on expired balances too: expiry
	// gates redemption eligibility, never restitution.
	Refund(ctx context.Context, balanceID string) error

	Grant(req models.GrantPackageBalanceRequest) (*models.PackageBalance, error)
	ListByConsumer(consumerID string) ([]models.PackageBalance, error)
}

// DefaultLedgerService is our production implementation.
type DefaultLedgerService struct {
	Repo creditsRepo.CreditsRepository
	Now  func() time.Time // override in tests; nil means time.Now
}

func (svc *DefaultLedgerService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

// Redeem selects FIFO by expiry, not creation order: the balance closest to
// expiring is always the one consumed first.
func (svc *DefaultLedgerService) Redeem(ctx context.Context, consumerID, providerID, serviceID string) (*models.PackageBalance, error) {
	balance, err := svc.Repo.RedeemEarliestExpiring(ctx, consumerID, providerID, serviceID, svc.now())
	if err != nil {
		if errors.Is(err, creditsRepo.ErrNoEligibleBalance) {
			return nil, ErrNoCreditsAvailable
		}
		return nil, fmt.Errorf("redeem failed: %w", err)
	}

	utils.GetLogger().Info("package credit redeemed",
		zap.String("balanceId", balance.ID),
		zap.String("consumerId", consumerID),
		zap.Int("remaining", balance.RemainingCredits),
	)
	return balance, nil
}

// Refund restores one credit on the referenced balance.
func (svc *DefaultLedgerService) Refund(ctx context.Context, balanceID string) error {
	if err := svc.Repo.Refund(ctx, balanceID); err != nil {
		return fmt.Errorf("refund to balance %s failed: %w", balanceID, err)
	}
	utils.GetLogger().Info("package credit refunded", zap.String("balanceId", balanceID))
	return nil
}

// Grant creates a new credit bucket, typically after an upstream package
// purchase settles.
func (svc *DefaultLedgerService) Grant(req models.GrantPackageBalanceRequest) (*models.PackageBalance, error) {
	if req.Credits < 1 {
		return nil, fmt.Errorf("grant requires at least one credit, got %d", req.Credits)
	}
	balance := &models.PackageBalance{
		ID:               uuid.New().String(),
		ConsumerID:       req.ConsumerID,
		ProviderID:       req.ProviderID,
		ServiceID:        req.ServiceID,
		RemainingCredits: req.Credits,
		ExpiresAt:        req.ExpiresAt,
		CreatedAt:        svc.now(),
	}
	if err := svc.Repo.Create(balance); err != nil {
		return nil, fmt.Errorf("grant failed: %w", err)
	}
	return balance, nil
}

// ListByConsumer returns all balances a consumer holds, soonest-expiring first.
func (svc *DefaultLedgerService) ListByConsumer(consumerID string) ([]models.PackageBalance, error) {
	return svc.Repo.ListByConsumer(consumerID)
}
