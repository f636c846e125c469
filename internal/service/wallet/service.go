package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/wallet"
	"github.com/google/uuid"
)

type WalletServiceImpl struct {
	ledger       balance.Ledger
	walletRepo   wallet.WalletRepository
	fetchers     []wallet.Fetcher
	exchangeCode string
}

// NewWalletService syncs the given fetchers in order. Sources without a fetcher report
// wallet.ErrSourceNotConfigured.
func NewWalletService(
	ledger balance.Ledger,
	walletRepo wallet.WalletRepository,
	exchangeCode string,
	fetchers ...wallet.Fetcher,
) wallet.WalletService {
	return &WalletServiceImpl{
		ledger:       ledger,
		walletRepo:   walletRepo,
		fetchers:     fetchers,
		exchangeCode: exchangeCode,
	}
}

func (s *WalletServiceImpl) Sync(ctx context.Context, source wallet.Source) (wallet.SyncResult, error) {
	if !source.IsValid() {
		return wallet.SyncResult{}, wallet.ErrUnknownSource
	}
	for _, f := range s.fetchers {
		if f.Source() == source {
			return s.sync(ctx, f)
		}
	}
	return wallet.SyncResult{}, wallet.ErrSourceNotConfigured
}

// SyncAll keeps going after a failing source and returns the joined errors.
func (s *WalletServiceImpl) SyncAll(ctx context.Context) ([]wallet.SyncResult, error) {
	var (
		results []wallet.SyncResult
		errs    []error
	)
	for _, f := range s.fetchers {
		result, err := s.sync(ctx, f)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Source(), err))
			continue
		}
		results = append(results, result)
	}
	return results, errors.Join(errs...)
}

func (s *WalletServiceImpl) sync(ctx context.Context, f wallet.Fetcher) (wallet.SyncResult, error) {
	result := wallet.SyncResult{Source: string(f.Source())}

	transfers, err := f.FetchTransfers(ctx)
	if err != nil {
		return result, err
	}
	result.Fetched = len(transfers)

	for _, t := range transfers {
		if !t.Amount.IsPositive() {
			result.Skipped++
			continue
		}
		recorded, err := s.record(ctx, f.Source(), t)
		if err != nil {
			return result, fmt.Errorf("failed to record transfer %s: %w", t.ExternalID, err)
		}
		if recorded {
			result.Recorded++
		} else {
			result.Skipped++
		}
	}

	if result.Recorded > 0 {
		slog.Info("wallet transfers recorded",
			"source", result.Source,
			"recorded", result.Recorded,
			"skipped", result.Skipped,
		)
	}
	return result, nil
}

// record stores t and posts it to the exchange balance in one transaction. A transfer
// that is already stored is left alone.
func (s *WalletServiceImpl) record(ctx context.Context, source wallet.Source, t wallet.Transfer) (bool, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("failed to generate wallet transaction id: %w", err)
	}

	var inserted bool
	err = s.ledger.Atomically(ctx, func(ctx context.Context) error {
		saved, ok, err := s.walletRepo.Insert(ctx, wallet.WalletTransaction{
			ID:         id.String(),
			Source:     source,
			ExternalID: t.ExternalID,
			Direction:  t.Direction,
			Amount:     t.Amount,
			Currency:   t.Currency,
			OccurredAt: t.OccurredAt,
		})
		if err != nil || !ok {
			return err
		}
		inserted = true

		txType := balance.TransactionTransfer
		if t.Direction == wallet.DirectionIn {
			txType = balance.TransactionTopUp
		}
		link := balance.WalletTransactionLink(saved.ID)
		_, err = s.ledger.Post(ctx, balance.Posting{
			BalanceCode: s.exchangeCode,
			Type:        txType,
			Amount:      t.Amount,
			Date:        t.OccurredAt,
			Description: fmt.Sprintf("%s %s %s", source, t.Direction, t.ExternalID),
			Link:        &link,
		})
		return err
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (s *WalletServiceImpl) ListTransactions(ctx context.Context, filter wallet.WalletTransactionFilter) (wallet.ListWalletTransactionResponse, error) {
	if err := filter.Validate(); err != nil {
		return wallet.ListWalletTransactionResponse{}, err
	}

	rows, total, err := s.walletRepo.List(ctx, filter)
	if err != nil {
		return wallet.ListWalletTransactionResponse{}, err
	}

	data := make([]wallet.WalletTransactionResponse, 0, len(rows))
	for _, w := range rows {
		data = append(data, wallet.NewWalletTransactionResponse(w))
	}

	return wallet.ListWalletTransactionResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
