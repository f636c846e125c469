package expense

import "context"

// ExpenseService keeps every expense and its ledger entries in step. Each write runs in a
// single transaction together with its ledger postings.
type ExpenseService interface {
	CreateExpense(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	GetExpense(ctx context.Context, id string) (ExpenseResponse, error)
	ListExpenses(ctx context.Context, filter ExpenseFilter) (ListExpenseResponse, error)
	UpdateExpense(ctx context.Context, req UpdateExpenseRequest) (ExpenseResponse, error)
	DeleteExpense(ctx context.Context, id string) error
}
