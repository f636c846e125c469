package payment

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger/ledgertest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "0190a3c4-0000-7000-8000-0000000000e1"

type memoryPayments struct {
	rows map[string]payment.Payment
}

func (r *memoryPayments) Create(_ context.Context, p payment.Payment) (payment.Payment, error) {
	r.rows[p.ID] = p
	return p, nil
}

func (r *memoryPayments) GetByID(_ context.Context, id string) (payment.Payment, error) {
	p, ok := r.rows[id]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return p, nil
}

func (r *memoryPayments) List(context.Context, payment.PaymentFilter) ([]payment.Payment, int64, error) {
	var result []payment.Payment
	for _, p := range r.rows {
		result = append(result, p)
	}
	return result, int64(len(result)), nil
}

func (r *memoryPayments) MarkPaid(_ context.Context, id string, paidAt time.Time) (payment.Payment, error) {
	p, ok := r.rows[id]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	if p.Status != payment.StatusPending {
		return payment.Payment{}, payment.ErrPaymentAlreadyPaid
	}
	p.Status = payment.StatusPaid
	p.PaidAt = &paidAt
	r.rows[id] = p
	return p, nil
}

func (r *memoryPayments) Delete(_ context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return payment.ErrPaymentNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryPayments) SumPaid(context.Context, string, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *memoryPayments) CountByEmployee(_ context.Context, employeeID string) (int64, error) {
	var n int64
	for _, p := range r.rows {
		if p.EmployeeID == employeeID {
			n++
		}
	}
	return n, nil
}

type memoryEmployees struct {
	balances map[string]decimal.Decimal
}

func (r *memoryEmployees) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (r *memoryEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	b, ok := r.balances[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, CurrentBalance: b}, nil
}

func (r *memoryEmployees) List(context.Context, employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (r *memoryEmployees) ListActive(context.Context, *string) ([]employee.Employee, error) {
	return nil, nil
}

func (r *memoryEmployees) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (r *memoryEmployees) Delete(context.Context, string) error { return nil }

func (r *memoryEmployees) AdjustBalance(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	b, ok := r.balances[id]
	if !ok {
		return decimal.Zero, employee.ErrEmployeeNotFound
	}
	r.balances[id] = b.Add(delta)
	return r.balances[id], nil
}

type fixture struct {
	svc       payment.PaymentService
	tx        *ledgertest.Transactor
	payments  *memoryPayments
	employees *memoryEmployees
}

func newFixture() fixture {
	f := fixture{
		tx:        &ledgertest.Transactor{},
		payments:  &memoryPayments{rows: map[string]payment.Payment{}},
		employees: &memoryEmployees{balances: map[string]decimal.Decimal{employeeID: decimal.NewFromInt(500)}},
	}
	f.svc = NewPaymentService(f.tx, f.payments, f.employees)
	return f
}

func createRequest(amount string) payment.CreatePaymentRequest {
	return payment.CreatePaymentRequest{
		EmployeeID: employeeID,
		Amount:     decimal.RequireFromString(amount),
		Date:       "2024-03-31",
	}
}

func TestPaymentService_Create_Pending(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreatePayment(context.Background(), createRequest("120.50"))
	require.NoError(t, err)
	assert.Equal(t, string(payment.StatusPending), resp.Status)
	assert.Nil(t, resp.PaidAt)
	assert.True(t, decimal.NewFromInt(500).Equal(f.employees.balances[employeeID]))
}

func TestPaymentService_Create_UnknownEmployee(t *testing.T) {
	f := newFixture()
	req := createRequest("10")
	req.EmployeeID = "0190a3c4-0000-7000-8000-0000000000ff"

	_, err := f.svc.CreatePayment(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, f.payments.rows)
}

func TestPaymentService_MarkPaid_DebitsBalanceOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.CreatePayment(ctx, createRequest("120.50"))
	require.NoError(t, err)

	paid, err := f.svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payment.StatusPaid), paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.True(t, decimal.RequireFromString("379.5").Equal(f.employees.balances[employeeID]))
	assert.Equal(t, 1, f.tx.Calls)

	_, err = f.svc.MarkPaid(ctx, created.ID)
	assert.ErrorIs(t, err, payment.ErrPaymentAlreadyPaid)
	assert.True(t, decimal.RequireFromString("379.5").Equal(f.employees.balances[employeeID]))
}

func TestPaymentService_Delete_RestoresPaidAmount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	pending, err := f.svc.CreatePayment(ctx, createRequest("50"))
	require.NoError(t, err)
	paid, err := f.svc.CreatePayment(ctx, createRequest("100"))
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(ctx, paid.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400).Equal(f.employees.balances[employeeID]))

	require.NoError(t, f.svc.DeletePayment(ctx, pending.ID))
	assert.True(t, decimal.NewFromInt(400).Equal(f.employees.balances[employeeID]))

	require.NoError(t, f.svc.DeletePayment(ctx, paid.ID))
	assert.True(t, decimal.NewFromInt(500).Equal(f.employees.balances[employeeID]))
	assert.Empty(t, f.payments.rows)

	assert.ErrorIs(t, f.svc.DeletePayment(ctx, paid.ID), payment.ErrPaymentNotFound)
}
