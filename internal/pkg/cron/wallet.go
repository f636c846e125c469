package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/wallet"
)

const WalletSyncJob = "wallet_sync"

// RegisterWalletSync schedules periodic wallet reconciliation. A non-positive interval
// leaves the job unregistered.
func RegisterWalletSync(s *Scheduler, svc wallet.WalletService, interval time.Duration) bool {
	if interval <= 0 {
		return false
	}
	s.AddJob(WalletSyncJob, interval, interval, func(ctx context.Context) error {
		results, err := svc.SyncAll(ctx)
		for _, r := range results {
			s.logger.Info("Wallet sync finished",
				slog.String("source", string(r.Source)),
				slog.Int("fetched", r.Fetched),
				slog.Int("recorded", r.Recorded),
				slog.Int("skipped", r.Skipped),
			)
		}
		return err
	})
	return true
}
