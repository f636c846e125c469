package balance

import (
	"context"

	"github.com/shopspring/decimal"
)

type BalanceRepository interface {
	CreateBalance(ctx context.Context, b Balance) (Balance, error)
	GetBalanceByID(ctx context.Context, id string) (Balance, error)
	GetBalanceByCode(ctx context.Context, code string) (Balance, error)
	ListBalances(ctx context.Context) ([]Balance, error)

	// LockBalance reads the row with SELECT ... FOR UPDATE. Must run inside a transaction.
	LockBalance(ctx context.Context, id string) (Balance, error)
	// AdjustBalance adds delta to current_amount.
	AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (Balance, error)
	SetBalanceAmount(ctx context.Context, id string, amount decimal.Decimal) (Balance, error)
	// SumTransactions returns the signed sum of every transaction of the balance.
	SumTransactions(ctx context.Context, balanceID string) (decimal.Decimal, error)

	CreateTransaction(ctx context.Context, t Transaction) (Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (Transaction, error)
	UpdateTransaction(ctx context.Context, t Transaction) (Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)
	ListTransactionsByLink(ctx context.Context, link Link) ([]Transaction, error)
}
