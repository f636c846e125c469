package wallet

import "context"

type WalletService interface {
	// Sync records every new transfer of source and posts it to the exchange balance.
	// Running it again with the same upstream data changes nothing.
	Sync(ctx context.Context, source Source) (SyncResult, error)

	// SyncAll runs Sync for every configured source
	SyncAll(ctx context.Context) ([]SyncResult, error)

	ListTransactions(ctx context.Context, filter WalletTransactionFilter) (ListWalletTransactionResponse, error)
}
