package balance

import "context"

// Ledger is the narrow API other services use to keep their ledger entries in step with
// their own records. Post and RevertLinked assume the caller already runs inside Atomically.
type Ledger interface {
	// Atomically runs fn under the ledger lock inside one database transaction
	Atomically(ctx context.Context, fn func(ctx context.Context) error) error

	// Post creates the entry and applies its effect to the balance
	Post(ctx context.Context, p Posting) (Transaction, error)

	// RevertLinked applies the inverse of every entry owned by link, then deletes them
	RevertLinked(ctx context.Context, link Link) (int, error)
}

type LedgerService interface {
	Ledger

	CreateBalance(ctx context.Context, req CreateBalanceRequest) (BalanceResponse, error)
	GetBalance(ctx context.Context, id string) (BalanceResponse, error)
	ListBalances(ctx context.Context) ([]BalanceResponse, error)

	// ReconcileBalance compares current_amount with the ledger sum; fix overwrites the former
	ReconcileBalance(ctx context.Context, id string, fix bool) (ReconcileResponse, error)

	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (TransactionResponse, error)
	GetTransaction(ctx context.Context, id string) (TransactionResponse, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) (ListTransactionResponse, error)

	// UpdateTransaction reverts the old effect, replaces the entry, then applies the new effect
	UpdateTransaction(ctx context.Context, req UpdateTransactionRequest) (TransactionResponse, error)

	// DeleteTransaction reverts the effect, then deletes the entry
	DeleteTransaction(ctx context.Context, id string) error
}
