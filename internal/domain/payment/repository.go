package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRepository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)
	// MarkPaid moves a pending payment to paid. Returns ErrPaymentAlreadyPaid when it was not pending.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (Payment, error)
	Delete(ctx context.Context, id string) error
	// SumPaid totals paid payments of an employee dated within [start, end].
	SumPaid(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error)
	CountByEmployee(ctx context.Context, employeeID string) (int64, error)
}
