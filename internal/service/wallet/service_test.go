package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/wallet"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger/ledgertest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	source    wallet.Source
	transfers []wallet.Transfer
	err       error
}

func (f *stubFetcher) Source() wallet.Source { return f.source }

func (f *stubFetcher) FetchTransfers(context.Context) ([]wallet.Transfer, error) {
	return f.transfers, f.err
}

type memoryWalletRepo struct {
	mu   sync.Mutex
	rows map[string]wallet.WalletTransaction
}

func newMemoryWalletRepo() *memoryWalletRepo {
	return &memoryWalletRepo{rows: map[string]wallet.WalletTransaction{}}
}

func (r *memoryWalletRepo) Insert(_ context.Context, w wallet.WalletTransaction) (wallet.WalletTransaction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := string(w.Source) + "/" + w.ExternalID
	if existing, ok := r.rows[key]; ok {
		return existing, false, nil
	}
	w.CreatedAt = time.Now()
	r.rows[key] = w
	return w, true, nil
}

func (r *memoryWalletRepo) List(context.Context, wallet.WalletTransactionFilter) ([]wallet.WalletTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []wallet.WalletTransaction
	for _, w := range r.rows {
		result = append(result, w)
	}
	return result, int64(len(result)), nil
}

func transfer(id string, dir wallet.Direction, amount string) wallet.Transfer {
	return wallet.Transfer{
		ExternalID: id,
		Direction:  dir,
		Amount:     decimal.RequireFromString(amount),
		Currency:   "USDT",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func newService(fetchers ...wallet.Fetcher) (wallet.WalletService, *ledgertest.BalanceRepository, *memoryWalletRepo) {
	balances := ledgertest.NewBalanceRepository()
	balances.Seed(balance.TypeExchange, "EXCHANGE", decimal.NewFromInt(100))
	repo := newMemoryWalletRepo()
	l := ledger.NewLedgerService(&ledgertest.Transactor{}, &ledgertest.Locker{}, balances)
	return NewWalletService(l, repo, "EXCHANGE", fetchers...), balances, repo
}

func TestWalletService_Sync_IsIdempotent(t *testing.T) {
	htx := &stubFetcher{source: wallet.SourceHTX, transfers: []wallet.Transfer{
		transfer("deposit-1", wallet.DirectionIn, "250"),
		transfer("withdraw-2", wallet.DirectionOut, "40.5"),
		transfer("deposit-3", wallet.DirectionIn, "0"),
	}}
	svc, balances, repo := newService(htx)
	ctx := context.Background()

	first, err := svc.Sync(ctx, wallet.SourceHTX)
	require.NoError(t, err)
	assert.Equal(t, wallet.SyncResult{Source: "htx", Fetched: 3, Recorded: 2, Skipped: 1}, first)
	assert.True(t, decimal.RequireFromString("309.5").Equal(balances.Amount("EXCHANGE")))

	second, err := svc.Sync(ctx, wallet.SourceHTX)
	require.NoError(t, err)
	assert.Equal(t, wallet.SyncResult{Source: "htx", Fetched: 3, Recorded: 0, Skipped: 3}, second)
	assert.True(t, decimal.RequireFromString("309.5").Equal(balances.Amount("EXCHANGE")))

	entries := balances.Transactions()
	require.Len(t, entries, 2)
	assert.Equal(t, balance.TransactionTopUp, entries[0].Type)
	assert.Equal(t, balance.TransactionTransfer, entries[1].Type)
	for _, e := range entries {
		require.NotNil(t, e.WalletTransactionID)
	}
	assert.Len(t, repo.rows, 2)
}

func TestWalletService_Sync_SourceErrors(t *testing.T) {
	svc, _, _ := newService(&stubFetcher{source: wallet.SourceHTX})
	ctx := context.Background()

	_, err := svc.Sync(ctx, wallet.Source("binance"))
	assert.ErrorIs(t, err, wallet.ErrUnknownSource)

	_, err = svc.Sync(ctx, wallet.SourceBSC)
	assert.ErrorIs(t, err, wallet.ErrSourceNotConfigured)
}

func TestWalletService_SyncAll_ContinuesAfterFailure(t *testing.T) {
	boom := errors.New("upstream down")
	htx := &stubFetcher{source: wallet.SourceHTX, err: boom}
	bsc := &stubFetcher{source: wallet.SourceBSC, transfers: []wallet.Transfer{
		transfer("0xabc", wallet.DirectionIn, "5"),
	}}
	svc, balances, _ := newService(htx, bsc)

	results, err := svc.SyncAll(context.Background())
	assert.ErrorIs(t, err, boom)
	require.Len(t, results, 1)
	assert.Equal(t, "bsc", results[0].Source)
	assert.Equal(t, 1, results[0].Recorded)
	assert.True(t, decimal.NewFromInt(105).Equal(balances.Amount("EXCHANGE")))
}

func TestWalletService_SameExternalIDAcrossSources(t *testing.T) {
	id := uuid.NewString()
	htx := &stubFetcher{source: wallet.SourceHTX, transfers: []wallet.Transfer{transfer(id, wallet.DirectionIn, "1")}}
	bsc := &stubFetcher{source: wallet.SourceBSC, transfers: []wallet.Transfer{transfer(id, wallet.DirectionIn, "1")}}
	svc, balances, _ := newService(htx, bsc)

	_, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, balances.Transactions(), 2)
}
