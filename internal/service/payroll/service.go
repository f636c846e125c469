package payroll

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/numeric"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentEmployees bounds the per-employee goroutines of CalculatePayroll.
const maxConcurrentEmployees = 8

type PayrollServiceImpl struct {
	settingsService settings.SettingsService
	employeeRepo    employee.EmployeeRepository
	metricsRepo     metrics.DailyMetricsRepository
	paymentRepo     payment.PaymentRepository
}

func NewPayrollService(
	settingsService settings.SettingsService,
	employeeRepo employee.EmployeeRepository,
	metricsRepo metrics.DailyMetricsRepository,
	paymentRepo payment.PaymentRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		settingsService: settingsService,
		employeeRepo:    employeeRepo,
		metricsRepo:     metricsRepo,
		paymentRepo:     paymentRepo,
	}
}

func (s *PayrollServiceImpl) CalculateEmployeePayroll(ctx context.Context, employeeID string, period payroll.Period) (payroll.EmployeePayroll, error) {
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.EmployeePayroll{}, err
	}

	cfg, err := s.settingsService.GetPayrollSettings(ctx)
	if err != nil {
		return payroll.EmployeePayroll{}, err
	}

	rows, err := s.metricsRepo.ListByPeriod(ctx, period.Start, period.End, e.CountryID)
	if err != nil {
		return payroll.EmployeePayroll{}, err
	}

	return s.calculate(ctx, e, period, cfg, rows)
}

// CalculatePayroll loads settings and metrics once, then computes every active employee
// concurrently. Employees keep the order returned by the repository.
func (s *PayrollServiceImpl) CalculatePayroll(ctx context.Context, period payroll.Period, countryID *string) (payroll.Summary, error) {
	cfg, err := s.settingsService.GetPayrollSettings(ctx)
	if err != nil {
		return payroll.Summary{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx, countryID)
	if err != nil {
		return payroll.Summary{}, err
	}

	rows, err := s.metricsRepo.ListByPeriod(ctx, period.Start, period.End, countryID)
	if err != nil {
		return payroll.Summary{}, err
	}
	byCountry := make(map[string][]metrics.DailyMetrics)
	for _, m := range rows {
		byCountry[m.CountryID] = append(byCountry[m.CountryID], m)
	}

	results := make([]payroll.EmployeePayroll, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmployees)
	for i, e := range employees {
		g.Go(func() error {
			scoped := rows
			if e.CountryID != nil {
				scoped = byCountry[*e.CountryID]
			}
			p, err := s.calculate(gctx, e, period, cfg, scoped)
			if err != nil {
				return fmt.Errorf("employee %s: %w", e.ID, err)
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.Summary{}, err
	}

	summary := payroll.Summary{
		Period:          period,
		CountryID:       countryID,
		Employees:       results,
		TotalCalculated: decimal.Zero,
		TotalPaid:       decimal.Zero,
		TotalUnpaid:     decimal.Zero,
	}
	for _, p := range results {
		summary.TotalCalculated = summary.TotalCalculated.Add(p.CalculatedAmount)
		summary.TotalPaid = summary.TotalPaid.Add(p.PaidAmount)
		summary.TotalUnpaid = summary.TotalUnpaid.Add(p.UnpaidAmount)
	}
	return summary, nil
}

// calculate runs the role strategy over rows, which must already be scoped to the
// employee's country.
func (s *PayrollServiceImpl) calculate(
	ctx context.Context,
	e employee.Employee,
	period payroll.Period,
	cfg settings.PayrollSettings,
	rows []metrics.DailyMetrics,
) (payroll.EmployeePayroll, error) {
	pay := strategyFor(e.Role)
	if pay == nil {
		return payroll.EmployeePayroll{}, employee.ErrInvalidRole
	}

	details := pay(e, summarize(rows), cfg)

	var total float64
	for i := range details {
		total += details[i].Amount
	}

	paid, err := s.paymentRepo.SumPaid(ctx, e.ID, period.Start, period.End)
	if err != nil {
		return payroll.EmployeePayroll{}, err
	}

	calculated := decimal.NewFromFloat(numeric.RoundCents(total)).Round(2)
	paid = paid.Round(2)

	return payroll.EmployeePayroll{
		EmployeeID:       e.ID,
		EmployeeName:     e.Name,
		Role:             string(e.Role),
		CountryID:        e.CountryID,
		Period:           period,
		CalculatedAmount: calculated,
		PaidAmount:       paid,
		UnpaidAmount:     calculated.Sub(paid),
		Details:          details,
	}, nil
}
