package expense

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger/ledgertest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryExpenseRepo struct {
	mu   sync.Mutex
	rows map[string]expense.Expense
}

func newMemoryExpenseRepo() *memoryExpenseRepo {
	return &memoryExpenseRepo{rows: map[string]expense.Expense{}}
}

func (r *memoryExpenseRepo) Create(_ context.Context, e expense.Expense) (expense.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.CreatedAt, e.UpdatedAt = time.Now(), time.Now()
	r.rows[e.ID] = e
	return e, nil
}

func (r *memoryExpenseRepo) GetByID(_ context.Context, id string) (expense.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return expense.Expense{}, expense.ErrExpenseNotFound
	}
	return e, nil
}

func (r *memoryExpenseRepo) List(context.Context, expense.ExpenseFilter) ([]expense.Expense, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []expense.Expense
	for _, e := range r.rows {
		result = append(result, e)
	}
	return result, int64(len(result)), nil
}

func (r *memoryExpenseRepo) Update(_ context.Context, e expense.Expense) (expense.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[e.ID]; !ok {
		return expense.Expense{}, expense.ErrExpenseNotFound
	}
	r.rows[e.ID] = e
	return e, nil
}

func (r *memoryExpenseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return expense.ErrExpenseNotFound
	}
	delete(r.rows, id)
	return nil
}

type fixture struct {
	svc      expense.ExpenseService
	balances *ledgertest.BalanceRepository
	expenses *memoryExpenseRepo
}

func newFixture() fixture {
	balances := ledgertest.NewBalanceRepository()
	balances.Seed(balance.TypeExchange, "EXCHANGE", decimal.NewFromInt(1000))
	balances.Seed(balance.TypeAgency, "TRUST", decimal.Zero)
	balances.Seed(balance.TypeAgency, "FBM", decimal.Zero)

	expenses := newMemoryExpenseRepo()
	l := ledger.NewLedgerService(&ledgertest.Transactor{}, &ledgertest.Locker{}, balances)
	return fixture{
		svc:      NewExpenseService(l, balances, expenses, "EXCHANGE"),
		balances: balances,
		expenses: expenses,
	}
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func str(s string) *string { return &s }

func TestAgencyTopUpCreatesTwoEntries(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateExpense(context.Background(), expense.CreateExpenseRequest{
		Date: "2024-02-01", Category: "agency_topup", Amount: amount("300"), TargetBalanceCode: str("trust"),
	})
	require.NoError(t, err)
	require.Len(t, resp.TransactionIDs, 2)
	assert.Equal(t, "TRUST", *resp.TargetBalanceCode)

	entries := f.balances.Transactions()
	require.Len(t, entries, 2)
	assert.Equal(t, balance.TransactionTransfer, entries[0].Type)
	assert.Equal(t, balance.TransactionTopUp, entries[1].Type)

	assert.True(t, amount("700").Equal(f.balances.Amount("EXCHANGE")))
	assert.True(t, amount("300").Equal(f.balances.Amount("TRUST")))
}

func TestPlainExpenseCreatesOneEntry(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateExpense(context.Background(), expense.CreateExpenseRequest{
		Date: "2024-02-01", Category: "Office", Amount: amount("45.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "office", resp.Category)
	require.Len(t, resp.TransactionIDs, 1)

	entries := f.balances.Transactions()
	require.Len(t, entries, 1)
	assert.Equal(t, balance.TransactionExpense, entries[0].Type)
	assert.True(t, amount("954.5").Equal(f.balances.Amount("EXCHANGE")))
}

func TestUpdateRederivesEntries(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.CreateExpense(ctx, expense.CreateExpenseRequest{
		Date: "2024-02-01", Category: "agency_topup", Amount: amount("300"), TargetBalanceCode: str("TRUST"),
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateExpense(ctx, expense.UpdateExpenseRequest{
		ID: created.ID,
		CreateExpenseRequest: expense.CreateExpenseRequest{
			Date: "2024-02-02", Category: "agency_topup", Amount: amount("120"), TargetBalanceCode: str("FBM"),
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.TransactionIDs, 2)

	assert.Len(t, f.balances.Transactions(), 2)
	assert.True(t, amount("880").Equal(f.balances.Amount("EXCHANGE")))
	assert.True(t, f.balances.Amount("TRUST").IsZero())
	assert.True(t, amount("120").Equal(f.balances.Amount("FBM")))

	// Switching to a plain category drops the agency leg.
	_, err = f.svc.UpdateExpense(ctx, expense.UpdateExpenseRequest{
		ID:                   created.ID,
		CreateExpenseRequest: expense.CreateExpenseRequest{Date: "2024-02-02", Category: "tools", Amount: amount("20")},
	})
	require.NoError(t, err)
	assert.Len(t, f.balances.Transactions(), 1)
	assert.True(t, f.balances.Amount("FBM").IsZero())
	assert.True(t, amount("980").Equal(f.balances.Amount("EXCHANGE")))

	got, err := f.svc.GetExpense(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.TransactionIDs, 1)
}

func TestDeleteLeavesNoOrphans(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.CreateExpense(ctx, expense.CreateExpenseRequest{
		Date: "2024-02-01", Category: "agency_topup", Amount: amount("300"), TargetBalanceCode: str("TRUST"),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteExpense(ctx, created.ID))
	assert.Empty(t, f.balances.Transactions())
	assert.True(t, amount("1000").Equal(f.balances.Amount("EXCHANGE")))
	assert.True(t, f.balances.Amount("TRUST").IsZero())

	assert.ErrorIs(t, f.svc.DeleteExpense(ctx, created.ID), expense.ErrExpenseNotFound)
}

func TestTopUpTargetMustBeAgency(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateExpense(context.Background(), expense.CreateExpenseRequest{
		Date: "2024-02-01", Category: "agency_topup", Amount: amount("10"), TargetBalanceCode: str("EXCHANGE"),
	})
	assert.ErrorIs(t, err, balance.ErrTargetBalanceNotAgency)
	assert.Empty(t, f.expenses.rows)
	assert.Empty(t, f.balances.Transactions())
}

func TestTopUpRequiresTarget(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateExpense(context.Background(), expense.CreateExpenseRequest{
		Date: "2024-02-01", Category: "agency_topup", Amount: amount("10"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target_balance_code")
}
