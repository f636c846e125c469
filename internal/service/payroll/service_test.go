package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	countryKZ = "0190a3c4-0000-7000-8000-00000000000a"
	countryUZ = "0190a3c4-0000-7000-8000-00000000000b"
)

type stubSettings struct {
	cfg   settings.PayrollSettings
	calls int
}

func (s *stubSettings) GetPayrollSettings(context.Context) (settings.PayrollSettings, error) {
	s.calls++
	return s.cfg, nil
}

func (s *stubSettings) ListSettings(context.Context) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{}, nil
}

func (s *stubSettings) UpdateSettings(context.Context, settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{}, nil
}

type stubEmployees struct {
	rows []employee.Employee
}

func (r *stubEmployees) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.rows = append(r.rows, e)
	return e, nil
}

func (r *stubEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range r.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *stubEmployees) List(context.Context, employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return r.rows, int64(len(r.rows)), nil
}

func (r *stubEmployees) ListActive(_ context.Context, countryID *string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, e := range r.rows {
		if !e.IsActive {
			continue
		}
		if countryID != nil && (e.CountryID == nil || *e.CountryID != *countryID) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (r *stubEmployees) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (r *stubEmployees) Delete(context.Context, string) error { return nil }

func (r *stubEmployees) AdjustBalance(context.Context, string, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubMetrics struct {
	rows []metrics.DailyMetrics
}

func (r *stubMetrics) Upsert(_ context.Context, m metrics.DailyMetrics) (metrics.DailyMetrics, error) {
	return m, nil
}

func (r *stubMetrics) GetByID(context.Context, string) (metrics.DailyMetrics, error) {
	return metrics.DailyMetrics{}, metrics.ErrDailyMetricsNotFound
}

func (r *stubMetrics) GetByDateAndCountry(context.Context, time.Time, string) (metrics.DailyMetrics, error) {
	return metrics.DailyMetrics{}, metrics.ErrDailyMetricsNotFound
}

func (r *stubMetrics) List(context.Context, metrics.DailyMetricsFilter) ([]metrics.DailyMetrics, int64, error) {
	return r.rows, int64(len(r.rows)), nil
}

func (r *stubMetrics) ListByPeriod(_ context.Context, start, end time.Time, countryID *string) ([]metrics.DailyMetrics, error) {
	var result []metrics.DailyMetrics
	for _, m := range r.rows {
		if m.Date.Before(start) || m.Date.After(end) {
			continue
		}
		if countryID != nil && m.CountryID != *countryID {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (r *stubMetrics) Delete(context.Context, string) error { return nil }

type stubPayments struct {
	paid map[string]decimal.Decimal
}

func (r *stubPayments) Create(_ context.Context, p payment.Payment) (payment.Payment, error) {
	return p, nil
}

func (r *stubPayments) GetByID(context.Context, string) (payment.Payment, error) {
	return payment.Payment{}, payment.ErrPaymentNotFound
}

func (r *stubPayments) List(context.Context, payment.PaymentFilter) ([]payment.Payment, int64, error) {
	return nil, 0, nil
}

func (r *stubPayments) MarkPaid(context.Context, string, time.Time) (payment.Payment, error) {
	return payment.Payment{}, payment.ErrPaymentNotFound
}

func (r *stubPayments) Delete(context.Context, string) error { return nil }

func (r *stubPayments) SumPaid(_ context.Context, employeeID string, _, _ time.Time) (decimal.Decimal, error) {
	return r.paid[employeeID], nil
}

func (r *stubPayments) CountByEmployee(context.Context, string) (int64, error) { return 0, nil }

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

func march() payroll.Period { return payroll.Period{Start: day(1), End: day(31)} }

func row(d int, country string, spend, rdSumUsdt float64, fdCount int) metrics.DailyMetrics {
	return metrics.DailyMetrics{
		ID:        fmt.Sprintf("%s-%d", country, d),
		Date:      day(d),
		CountryID: country,
		DailyMetricsInput: metrics.DailyMetricsInput{
			FdCount: fdCount,
		},
		CalculatedMetrics: metrics.CalculatedMetrics{
			TotalSpend: spend,
			RdSumUsdt:  rdSumUsdt,
		},
	}
}

func str(s string) *string { return &s }

func num(f float64) *float64 { return &f }

func newService(emps []employee.Employee, rows []metrics.DailyMetrics, paid map[string]decimal.Decimal) (payroll.PayrollService, *stubSettings) {
	cfg := &stubSettings{cfg: settings.DefaultPayrollSettings()}
	svc := NewPayrollService(cfg, &stubEmployees{rows: emps}, &stubMetrics{rows: rows}, &stubPayments{paid: paid})
	return svc, cfg
}

func TestPayrollService_Buyer_DefaultRate(t *testing.T) {
	buyer := employee.Employee{ID: "b1", Name: "Buyer", Role: employee.RoleBuyer, CountryID: str(countryKZ), IsActive: true}
	rows := []metrics.DailyMetrics{
		row(1, countryKZ, 200, 0, 0),
		row(2, countryKZ, 300, 0, 0),
		row(2, countryUZ, 1000, 0, 0),
	}
	svc, _ := newService([]employee.Employee{buyer}, rows, map[string]decimal.Decimal{"b1": decimal.NewFromInt(25)})

	got, err := svc.CalculateEmployeePayroll(context.Background(), "b1", march())
	require.NoError(t, err)
	assert.Equal(t, "60", got.CalculatedAmount.String())
	assert.Equal(t, "25", got.PaidAmount.String())
	assert.Equal(t, "35", got.UnpaidAmount.String())
	require.Len(t, got.Details, 1)
	assert.Equal(t, payroll.Detail{Metric: "total_spend", Value: 500, Rate: 12, Amount: 60}, got.Details[0])
}

func TestPayrollService_Buyer_RateOverrides(t *testing.T) {
	rows := []metrics.DailyMetrics{row(1, countryKZ, 1000, 0, 0)}

	tiered := employee.Employee{ID: "t", Role: employee.RoleBuyer, CountryID: str(countryKZ),
		BuyerTiers: []employee.RateTier{{Threshold: 2000, Rate: 20}, {Threshold: 500, Rate: 15}}}
	fixed := employee.Employee{ID: "p", Role: employee.RoleBuyer, CountryID: str(countryKZ),
		PercentRate: num(10), BuyerTiers: tiered.BuyerTiers}
	svc, _ := newService([]employee.Employee{tiered, fixed}, rows, nil)

	got, err := svc.CalculateEmployeePayroll(context.Background(), "t", march())
	require.NoError(t, err)
	assert.Equal(t, "150", got.CalculatedAmount.String())

	got, err = svc.CalculateEmployeePayroll(context.Background(), "p", march())
	require.NoError(t, err)
	assert.Equal(t, "100", got.CalculatedAmount.String())
}

func TestPayrollService_RdHandler(t *testing.T) {
	rows := []metrics.DailyMetrics{row(1, countryKZ, 0, 250, 0), row(2, countryKZ, 0, -50, 0)}
	rd := employee.Employee{ID: "r", Role: employee.RoleRdHandler, CountryID: str(countryKZ)}
	svc, _ := newService([]employee.Employee{rd}, rows, nil)

	got, err := svc.CalculateEmployeePayroll(context.Background(), "r", march())
	require.NoError(t, err)
	assert.Equal(t, "8", got.CalculatedAmount.String())
}

func TestPayrollService_FdHandler(t *testing.T) {
	rows := []metrics.DailyMetrics{row(1, countryKZ, 0, 0, 3), row(2, countryKZ, 0, 0, 3)}
	fd := employee.Employee{ID: "f", Role: employee.RoleFdHandler, CountryID: str(countryKZ)}
	override := employee.Employee{ID: "o", Role: employee.RoleFdHandler, CountryID: str(countryKZ),
		FdTier2Rate: num(6), FdBonus: num(0)}
	svc, _ := newService([]employee.Employee{fd, override}, rows, nil)

	// 6 FDs: (6*4 + 15) * 1.2
	got, err := svc.CalculateEmployeePayroll(context.Background(), "f", march())
	require.NoError(t, err)
	assert.Equal(t, "46.8", got.CalculatedAmount.String())
	assert.Len(t, got.Details, 2)

	// 6 FDs with tier 2 at 6 and no bonus: 6*6*1.2
	got, err = svc.CalculateEmployeePayroll(context.Background(), "o", march())
	require.NoError(t, err)
	assert.Equal(t, "43.2", got.CalculatedAmount.String())
	assert.Len(t, got.Details, 1)
}

func TestPayrollService_FixedRateRoles(t *testing.T) {
	rows := []metrics.DailyMetrics{
		row(1, countryKZ, 100, 0, 0),
		row(1, countryUZ, 50, 0, 0),
		row(2, countryKZ, 10, 0, 0),
		row(3, countryKZ, 0, 0, 0),
	}
	emps := []employee.Employee{
		{ID: "c", Role: employee.RoleContent},
		{ID: "d", Role: employee.RoleDesigner, FixedRate: num(7)},
		{ID: "h", Role: employee.RoleHeadDesigner},
		{ID: "x", Role: employee.RoleOther},
		{ID: "y", Role: employee.RoleOther, FixedRate: num(3)},
	}
	svc, _ := newService(emps, rows, nil)
	ctx := context.Background()

	// 2 active days across 2 active countries
	cases := map[string]string{"c": "40", "d": "28", "h": "30", "x": "0", "y": "6"}
	for id, want := range cases {
		got, err := svc.CalculateEmployeePayroll(ctx, id, march())
		require.NoError(t, err, id)
		assert.Equal(t, want, got.CalculatedAmount.String(), id)
	}
}

func TestPayrollService_RoundsHalfCentLikeDashboard(t *testing.T) {
	rows := []metrics.DailyMetrics{row(1, countryKZ, 100, 0, 0)}
	emps := []employee.Employee{{ID: "y", Role: employee.RoleOther, FixedRate: num(1.005)}}
	svc, _ := newService(emps, rows, nil)

	got, err := svc.CalculateEmployeePayroll(context.Background(), "y", march())
	require.NoError(t, err)
	// 1.005 is stored as 1.00499..., so it rounds down.
	assert.Equal(t, "1", got.CalculatedAmount.String())
	assert.Equal(t, 1.005, got.Details[0].Amount)
}

func TestPayrollService_UnknownEmployee(t *testing.T) {
	svc, _ := newService(nil, nil, nil)

	_, err := svc.CalculateEmployeePayroll(context.Background(), "missing", march())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_CalculatePayroll(t *testing.T) {
	emps := []employee.Employee{
		{ID: "b1", Role: employee.RoleBuyer, CountryID: str(countryKZ), IsActive: true},
		{ID: "b2", Role: employee.RoleBuyer, CountryID: str(countryUZ), IsActive: true},
		{ID: "b3", Role: employee.RoleBuyer, IsActive: true},
		{ID: "gone", Role: employee.RoleBuyer, IsActive: false},
	}
	rows := []metrics.DailyMetrics{row(1, countryKZ, 100, 0, 0), row(1, countryUZ, 200, 0, 0)}
	svc, cfg := newService(emps, rows, map[string]decimal.Decimal{"b3": decimal.NewFromInt(30)})

	summary, err := svc.CalculatePayroll(context.Background(), march(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.calls)
	require.Len(t, summary.Employees, 3)
	assert.Equal(t, "b1", summary.Employees[0].EmployeeID)
	assert.Equal(t, "12", summary.Employees[0].CalculatedAmount.String())
	assert.Equal(t, "24", summary.Employees[1].CalculatedAmount.String())
	assert.Equal(t, "36", summary.Employees[2].CalculatedAmount.String())
	assert.Equal(t, "72", summary.TotalCalculated.String())
	assert.Equal(t, "30", summary.TotalPaid.String())
	assert.Equal(t, "42", summary.TotalUnpaid.String())

	scoped, err := svc.CalculatePayroll(context.Background(), march(), str(countryUZ))
	require.NoError(t, err)
	require.Len(t, scoped.Employees, 1)
	assert.Equal(t, "b2", scoped.Employees[0].EmployeeID)
}
