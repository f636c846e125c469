package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) balance.BalanceRepository {
	return &balanceRepositoryImpl{db: db}
}

const balanceColumns = `id, type, code, name, current_amount, currency, created_at, updated_at`

func scanBalance(row pgx.Row) (balance.Balance, error) {
	var b balance.Balance
	err := row.Scan(&b.ID, &b.Type, &b.Code, &b.Name, &b.CurrentAmount, &b.Currency, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *balanceRepositoryImpl) getBalance(ctx context.Context, query string, args ...interface{}) (balance.Balance, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBalance(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return balance.Balance{}, balance.ErrBalanceNotFound
		}
		return balance.Balance{}, fmt.Errorf("failed to get balance: %w", err)
	}
	return b, nil
}

// CreateBalance implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) CreateBalance(ctx context.Context, b balance.Balance) (balance.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO balances (id, type, code, name, current_amount, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + balanceColumns

	created, err := scanBalance(q.QueryRow(ctx, query, b.ID, b.Type, b.Code, b.Name, b.CurrentAmount, b.Currency))
	if err != nil {
		if isUniqueViolation(err) {
			return balance.Balance{}, balance.ErrBalanceCodeExists
		}
		return balance.Balance{}, fmt.Errorf("failed to create balance: %w", err)
	}
	return created, nil
}

// GetBalanceByID implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) GetBalanceByID(ctx context.Context, id string) (balance.Balance, error) {
	return r.getBalance(ctx, `SELECT `+balanceColumns+` FROM balances WHERE id = $1`, id)
}

// GetBalanceByCode implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) GetBalanceByCode(ctx context.Context, code string) (balance.Balance, error) {
	return r.getBalance(ctx, `SELECT `+balanceColumns+` FROM balances WHERE code = $1`, strings.ToUpper(code))
}

// LockBalance implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) LockBalance(ctx context.Context, id string) (balance.Balance, error) {
	return r.getBalance(ctx, `SELECT `+balanceColumns+` FROM balances WHERE id = $1 FOR UPDATE`, id)
}

// ListBalances implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) ListBalances(ctx context.Context) ([]balance.Balance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+balanceColumns+` FROM balances ORDER BY type, code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	var balances []balance.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balances: %w", err)
	}
	return balances, nil
}

// AdjustBalance implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (balance.Balance, error) {
	query := `
		UPDATE balances
		SET current_amount = current_amount + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + balanceColumns
	return r.getBalance(ctx, query, id, delta)
}

// SetBalanceAmount implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) SetBalanceAmount(ctx context.Context, id string, amount decimal.Decimal) (balance.Balance, error) {
	query := `
		UPDATE balances
		SET current_amount = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + balanceColumns
	return r.getBalance(ctx, query, id, amount)
}

// SumTransactions implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) SumTransactions(ctx context.Context, balanceID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(CASE WHEN type = $2 THEN amount ELSE -amount END), 0)
		FROM balance_transactions
		WHERE balance_id = $1
	`
	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, balanceID, balance.TransactionTopUp).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions of balance %s: %w", balanceID, err)
	}
	return sum, nil
}

const transactionSelect = `
	SELECT t.id, t.balance_id, t.type, t.amount, t.date, t.description,
		t.expense_id, t.daily_metrics_id, t.wallet_transaction_id, t.created_at, b.code
	FROM balance_transactions t
	JOIN balances b ON b.id = t.balance_id`

func scanTransaction(row pgx.Row) (balance.Transaction, error) {
	var t balance.Transaction
	err := row.Scan(&t.ID, &t.BalanceID, &t.Type, &t.Amount, &t.Date, &t.Description,
		&t.ExpenseID, &t.DailyMetricsID, &t.WalletTransactionID, &t.CreatedAt, &t.BalanceCode)
	return t, err
}

func collectTransactions(rows pgx.Rows) ([]balance.Transaction, error) {
	defer rows.Close()

	var result []balance.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance transaction: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance transactions: %w", err)
	}
	return result, nil
}

// CreateTransaction implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) CreateTransaction(ctx context.Context, t balance.Transaction) (balance.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO balance_transactions (
			id, balance_id, type, amount, date, description, expense_id, daily_metrics_id, wallet_transaction_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query, t.ID, t.BalanceID, t.Type, t.Amount, t.Date, t.Description,
		t.ExpenseID, t.DailyMetricsID, t.WalletTransactionID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return balance.Transaction{}, fmt.Errorf("balance transaction references a missing record: %w", err)
		}
		return balance.Transaction{}, fmt.Errorf("failed to create balance transaction: %w", err)
	}
	return r.GetTransactionByID(ctx, t.ID)
}

// GetTransactionByID implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) GetTransactionByID(ctx context.Context, id string) (balance.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTransaction(q.QueryRow(ctx, transactionSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return balance.Transaction{}, balance.ErrTransactionNotFound
		}
		return balance.Transaction{}, fmt.Errorf("failed to get balance transaction %s: %w", id, err)
	}
	return t, nil
}

// UpdateTransaction implements balance.BalanceRepository. Owner links are not touched.
func (r *balanceRepositoryImpl) UpdateTransaction(ctx context.Context, t balance.Transaction) (balance.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE balance_transactions
		SET balance_id = $2, type = $3, amount = $4, date = $5, description = $6
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, t.ID, t.BalanceID, t.Type, t.Amount, t.Date, t.Description)
	if err != nil {
		return balance.Transaction{}, fmt.Errorf("failed to update balance transaction %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return balance.Transaction{}, balance.ErrTransactionNotFound
	}
	return r.GetTransactionByID(ctx, t.ID)
}

// DeleteTransaction implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) DeleteTransaction(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM balance_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete balance transaction %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return balance.ErrTransactionNotFound
	}
	return nil
}

// ListTransactions implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) ListTransactions(ctx context.Context, filter balance.TransactionFilter) ([]balance.Transaction, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.BalanceID != nil && *filter.BalanceID != "" {
		conditions = append(conditions, fmt.Sprintf("t.balance_id = $%d", argIdx))
		args = append(args, *filter.BalanceID)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("t.type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM balance_transactions t WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count balance transactions: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf("%s WHERE %s ORDER BY t.date DESC, t.created_at DESC LIMIT $%d OFFSET $%d",
		transactionSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list balance transactions: %w", err)
	}
	result, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

var linkColumns = map[balance.LinkKind]string{
	balance.LinkExpense:           "expense_id",
	balance.LinkDailyMetrics:      "daily_metrics_id",
	balance.LinkWalletTransaction: "wallet_transaction_id",
}

// ListTransactionsByLink implements balance.BalanceRepository.
func (r *balanceRepositoryImpl) ListTransactionsByLink(ctx context.Context, link balance.Link) ([]balance.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	column, ok := linkColumns[link.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown ledger link kind %q", link.Kind)
	}

	query := fmt.Sprintf("%s WHERE t.%s = $1 ORDER BY t.created_at ASC", transactionSelect, column)
	rows, err := q.Query(ctx, query, link.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of %s %s: %w", link.Kind, link.ID, err)
	}
	return collectTransactions(rows)
}
