package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type paymentRepositoryImpl struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

const paymentSelect = `
	SELECT p.id, p.employee_id, p.amount, p.date, p.status, p.note, p.paid_at, p.created_at, p.updated_at, e.name
	FROM payments p
	JOIN employees e ON e.id = p.employee_id`

func scanPayment(row pgx.Row) (payment.Payment, error) {
	var p payment.Payment
	err := row.Scan(&p.ID, &p.EmployeeID, &p.Amount, &p.Date, &p.Status, &p.Note, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt, &p.EmployeeName)
	return p, err
}

// Create implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payments (id, employee_id, amount, date, status, note, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := q.Exec(ctx, query, p.ID, p.EmployeeID, p.Amount, p.Date, p.Status, p.Note, p.PaidAt); err != nil {
		if isForeignKeyViolation(err) {
			return payment.Payment{}, employee.ErrEmployeeNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return r.GetByID(ctx, p.ID)
}

// GetByID implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanPayment(q.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to get payment %s: %w", id, err)
	}
	return found, nil
}

// List implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) List(ctx context.Context, filter payment.PaymentFilter) ([]payment.Payment, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("p.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("p.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payments p WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf("%s WHERE %s ORDER BY p.date DESC, p.created_at DESC LIMIT $%d OFFSET $%d",
		paymentSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating payments: %w", err)
	}
	return payments, total, nil
}

// MarkPaid implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) MarkPaid(ctx context.Context, id string, paidAt time.Time) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payments
		SET status = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`
	tag, err := q.Exec(ctx, query, id, payment.StatusPaid, paidAt, payment.StatusPending)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to mark payment %s as paid: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or no longer pending
		if _, err := r.GetByID(ctx, id); err != nil {
			return payment.Payment{}, err
		}
		return payment.Payment{}, payment.ErrPaymentAlreadyPaid
	}
	return r.GetByID(ctx, id)
}

// Delete implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}

// SumPaid implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) SumPaid(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE employee_id = $1 AND status = $2 AND date BETWEEN $3 AND $4
	`
	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, payment.StatusPaid, start, end).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid payments of employee %s: %w", employeeID, err)
	}
	return sum, nil
}

// CountByEmployee implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) CountByEmployee(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE employee_id = $1`, employeeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payments of employee %s: %w", employeeID, err)
	}
	return count, nil
}
