package wallet

import "context"

type WalletRepository interface {
	// Insert records w unless (source, external_id) already exists, in which case
	// inserted is false and nothing changes.
	Insert(ctx context.Context, w WalletTransaction) (saved WalletTransaction, inserted bool, err error)
	List(ctx context.Context, filter WalletTransactionFilter) ([]WalletTransaction, int64, error)
}
