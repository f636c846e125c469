package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/country"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

const expenseSelect = `
	SELECT x.id, x.date, x.country_id, x.category, x.amount, x.description, x.target_balance_code,
		x.created_at, x.updated_at, c.code
	FROM expenses x
	LEFT JOIN countries c ON c.id = x.country_id`

func scanExpense(row pgx.Row) (expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(&e.ID, &e.Date, &e.CountryID, &e.Category, &e.Amount, &e.Description,
		&e.TargetBalanceCode, &e.CreatedAt, &e.UpdatedAt, &e.CountryCode)
	return e, err
}

// Create implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expenses (id, date, country_id, category, amount, description, target_balance_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query, e.ID, e.Date, e.CountryID, e.Category, e.Amount, e.Description, e.TargetBalanceCode)
	if err != nil {
		if isForeignKeyViolation(err) {
			return expense.Expense{}, country.ErrCountryNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return r.GetByID(ctx, e.ID)
}

// GetByID implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanExpense(q.QueryRow(ctx, expenseSelect+` WHERE x.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense %s: %w", id, err)
	}
	return found, nil
}

// List implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.CountryID != nil && *filter.CountryID != "" {
		conditions = append(conditions, fmt.Sprintf("x.country_id = $%d", argIdx))
		args = append(args, *filter.CountryID)
		argIdx++
	}
	if filter.Category != nil && *filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("x.category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("x.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("x.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM expenses x WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf("%s WHERE %s ORDER BY x.date DESC, x.created_at DESC LIMIT $%d OFFSET $%d",
		expenseSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, total, nil
}

// Update implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Update(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expenses
		SET date = $2, country_id = $3, category = $4, amount = $5, description = $6,
			target_balance_code = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, e.ID, e.Date, e.CountryID, e.Category, e.Amount, e.Description, e.TargetBalanceCode)
	if err != nil {
		if isForeignKeyViolation(err) {
			return expense.Expense{}, country.ErrCountryNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to update expense %s: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return expense.Expense{}, expense.ErrExpenseNotFound
	}
	return r.GetByID(ctx, e.ID)
}

// Delete implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}
