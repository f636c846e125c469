// Package ledgertest provides in-memory doubles for services that post to the ledger.
package ledgertest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/lock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transactor runs fn directly. Nothing is rolled back.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// Locker grants every lock and counts how often one was taken.
type Locker struct {
	mu       sync.Mutex
	Obtained int
	Released int
}

func (l *Locker) Obtain(context.Context, string) (lock.Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Obtained++
	return release{l}, nil
}

type release struct{ l *Locker }

func (r release) Release(context.Context) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	r.l.Released++
	return nil
}

// BalanceRepository is a map-backed balance.BalanceRepository.
type BalanceRepository struct {
	mu           sync.Mutex
	balances     map[string]balance.Balance
	transactions map[string]balance.Transaction
	order        []string
	Locks        []string
}

func NewBalanceRepository() *BalanceRepository {
	return &BalanceRepository{
		balances:     map[string]balance.Balance{},
		transactions: map[string]balance.Transaction{},
	}
}

// Seed adds a balance with the given code and starting amount and returns its id.
func (r *BalanceRepository) Seed(typ balance.Type, code string, amount decimal.Decimal) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.balances[id] = balance.Balance{
		ID: id, Type: typ, Code: code, Name: code, CurrentAmount: amount, Currency: "USDT",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	return id
}

// Amount returns the current amount of the balance with code.
func (r *BalanceRepository) Amount(code string) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.balances {
		if b.Code == code {
			return b.CurrentAmount
		}
	}
	return decimal.Zero
}

// Transactions returns every stored entry in insertion order.
func (r *BalanceRepository) Transactions() []balance.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []balance.Transaction
	for _, id := range r.order {
		if t, ok := r.transactions[id]; ok {
			result = append(result, t)
		}
	}
	return result
}

func (r *BalanceRepository) CreateBalance(_ context.Context, b balance.Balance) (balance.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.balances {
		if existing.Code == b.Code {
			return balance.Balance{}, balance.ErrBalanceCodeExists
		}
	}
	b.CreatedAt, b.UpdatedAt = time.Now(), time.Now()
	r.balances[b.ID] = b
	return b, nil
}

func (r *BalanceRepository) GetBalanceByID(_ context.Context, id string) (balance.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.balances[id]
	if !ok {
		return balance.Balance{}, balance.ErrBalanceNotFound
	}
	return b, nil
}

func (r *BalanceRepository) GetBalanceByCode(_ context.Context, code string) (balance.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.balances {
		if strings.EqualFold(b.Code, code) {
			return b, nil
		}
	}
	return balance.Balance{}, balance.ErrBalanceNotFound
}

func (r *BalanceRepository) ListBalances(context.Context) ([]balance.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]balance.Balance, 0, len(r.balances))
	for _, b := range r.balances {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (r *BalanceRepository) LockBalance(ctx context.Context, id string) (balance.Balance, error) {
	b, err := r.GetBalanceByID(ctx, id)
	if err != nil {
		return balance.Balance{}, err
	}
	r.mu.Lock()
	r.Locks = append(r.Locks, b.Code)
	r.mu.Unlock()
	return b, nil
}

func (r *BalanceRepository) AdjustBalance(_ context.Context, id string, delta decimal.Decimal) (balance.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.balances[id]
	if !ok {
		return balance.Balance{}, balance.ErrBalanceNotFound
	}
	b.CurrentAmount = b.CurrentAmount.Add(delta)
	b.UpdatedAt = time.Now()
	r.balances[id] = b
	return b, nil
}

func (r *BalanceRepository) SetBalanceAmount(_ context.Context, id string, amount decimal.Decimal) (balance.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.balances[id]
	if !ok {
		return balance.Balance{}, balance.ErrBalanceNotFound
	}
	b.CurrentAmount = amount
	r.balances[id] = b
	return b, nil
}

func (r *BalanceRepository) SumTransactions(_ context.Context, balanceID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sum := decimal.Zero
	for _, t := range r.transactions {
		if t.BalanceID == balanceID {
			sum = sum.Add(t.Effect())
		}
	}
	return sum, nil
}

func (r *BalanceRepository) CreateTransaction(_ context.Context, t balance.Transaction) (balance.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.balances[t.BalanceID]
	if !ok {
		return balance.Transaction{}, balance.ErrBalanceNotFound
	}
	code := b.Code
	t.BalanceCode = &code
	t.CreatedAt = time.Now()
	r.transactions[t.ID] = t
	r.order = append(r.order, t.ID)
	return t, nil
}

func (r *BalanceRepository) GetTransactionByID(_ context.Context, id string) (balance.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[id]
	if !ok {
		return balance.Transaction{}, balance.ErrTransactionNotFound
	}
	return t, nil
}

func (r *BalanceRepository) UpdateTransaction(_ context.Context, t balance.Transaction) (balance.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.transactions[t.ID]
	if !ok {
		return balance.Transaction{}, balance.ErrTransactionNotFound
	}
	b, ok := r.balances[t.BalanceID]
	if !ok {
		return balance.Transaction{}, balance.ErrBalanceNotFound
	}
	code := b.Code
	t.BalanceCode = &code
	t.ExpenseID, t.DailyMetricsID, t.WalletTransactionID = existing.ExpenseID, existing.DailyMetricsID, existing.WalletTransactionID
	t.CreatedAt = existing.CreatedAt
	r.transactions[t.ID] = t
	return t, nil
}

func (r *BalanceRepository) DeleteTransaction(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[id]; !ok {
		return balance.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *BalanceRepository) ListTransactions(_ context.Context, filter balance.TransactionFilter) ([]balance.Transaction, int64, error) {
	all := r.Transactions()

	var matched []balance.Transaction
	for _, t := range all {
		if filter.BalanceID != nil && *filter.BalanceID != "" && t.BalanceID != *filter.BalanceID {
			continue
		}
		if filter.Type != nil && *filter.Type != "" && string(t.Type) != *filter.Type {
			continue
		}
		matched = append(matched, t)
	}
	return matched, int64(len(matched)), nil
}

func (r *BalanceRepository) ListTransactionsByLink(_ context.Context, link balance.Link) ([]balance.Transaction, error) {
	var result []balance.Transaction
	for _, t := range r.Transactions() {
		var owner *string
		switch link.Kind {
		case balance.LinkExpense:
			owner = t.ExpenseID
		case balance.LinkDailyMetrics:
			owner = t.DailyMetricsID
		case balance.LinkWalletTransaction:
			owner = t.WalletTransactionID
		}
		if owner != nil && *owner == link.ID {
			result = append(result, t)
		}
	}
	return result, nil
}
