package cron

import (
	"time"

	creditsRepo "agendly/database/repository/credits"
	"agendly/utils"

	"go.uber.org/zap"
)

// Exhausted balances are kept this long past expiry before cleanup, so
// support can still inspect recent ones.
const expiredBalanceRetention = 30 * 24 * time.Hour

// InitBalanceSweeper periodically deletes spent, long-expired package
// balances. Balances with credits remaining are never touched: refunds may
// still land on an expired balance.
func InitBalanceSweeper(repo creditsRepo.CreditsRepository) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			cutoff := time.Now().Add(-expiredBalanceRetention)
			deleted, err := repo.DeleteExhaustedExpired(cutoff)
			if err != nil {
				utils.GetLogger().Error("balance sweep failed", zap.Error(err))
			} else if deleted > 0 {
				utils.GetLogger().Info("swept exhausted expired balances", zap.Int64("deleted", deleted))
			}
			<-ticker.C
		}
	}()
}
