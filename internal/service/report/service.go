package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/xlsx"
)

var metricsHeader = []string{
	"date", "country", "spend_trust", "spend_crossgif", "spend_fbm", "total_spend", "agency_fee",
	"revenue_usdt_priemka", "revenue_usdt_own", "total_revenue_usdt", "fd_count", "fd_sum_usdt",
	"rd_sum_usdt", "chatterfy_cost", "additional_expenses", "total_payroll", "total_expenses_usdt",
	"net_profit", "roi",
}

var payrollHeader = []string{
	"employee_id", "employee_name", "role", "calculated_amount", "paid_amount", "unpaid_amount",
}

var detailsHeader = []string{"employee_name", "metric", "value", "rate", "amount"}

type ReportServiceImpl struct {
	metricsRepo    metrics.DailyMetricsRepository
	payrollService payroll.PayrollService
}

func NewReportService(metricsRepo metrics.DailyMetricsRepository, payrollService payroll.PayrollService) report.ReportService {
	return &ReportServiceImpl{
		metricsRepo:    metricsRepo,
		payrollService: payrollService,
	}
}

// ExportMetrics writes one row per stored daily metrics row of the period.
func (s *ReportServiceImpl) ExportMetrics(ctx context.Context, req report.ReportRequest) (report.File, error) {
	start, end, err := validate(req)
	if err != nil {
		return report.File{}, err
	}

	rows, err := s.metricsRepo.ListByPeriod(ctx, start, end, countryFilter(req.CountryID))
	if err != nil {
		return report.File{}, fmt.Errorf("failed to get daily metrics: %w", err)
	}

	w := xlsx.NewWriter()
	if err := w.Sheet("Metrics", metricsHeader...); err != nil {
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	for _, m := range rows {
		country := m.CountryID
		if m.CountryCode != nil {
			country = *m.CountryCode
		}
		err := w.Append(
			m.Date.Format("2006-01-02"), country,
			m.SpendTrust, m.SpendCrossgif, m.SpendFbm, m.TotalSpend, m.AgencyFee,
			m.RevenueUsdtPriemka, m.RevenueUsdtOwn, m.TotalRevenueUsdt, m.FdCount, m.FdSumUsdt,
			m.RdSumUsdt, m.ChatterfyCost, m.AdditionalExpenses, m.TotalPayroll, m.TotalExpensesUsdt,
			m.NetProfitMath, m.Roi,
		)
		if err != nil {
			return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
		}
	}

	return build(w, fmt.Sprintf("metrics_%s_%s.xlsx", req.StartDate, req.EndDate))
}

// ExportPayroll writes the summary on one sheet and every calculation line on a second.
func (s *ReportServiceImpl) ExportPayroll(ctx context.Context, req report.ReportRequest) (report.File, error) {
	start, end, err := validate(req)
	if err != nil {
		return report.File{}, err
	}

	summary, err := s.payrollService.CalculatePayroll(ctx, payroll.Period{Start: start, End: end}, countryFilter(req.CountryID))
	if err != nil {
		return report.File{}, fmt.Errorf("failed to calculate payroll: %w", err)
	}

	w := xlsx.NewWriter()
	if err := writePayroll(w, summary); err != nil {
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return build(w, fmt.Sprintf("payroll_%s_%s.xlsx", req.StartDate, req.EndDate))
}

func writePayroll(w *xlsx.Writer, summary payroll.Summary) error {
	if err := w.Sheet("Payroll", payrollHeader...); err != nil {
		return err
	}
	for _, p := range summary.Employees {
		err := w.Append(p.EmployeeID, p.EmployeeName, p.Role,
			p.CalculatedAmount.InexactFloat64(), p.PaidAmount.InexactFloat64(), p.UnpaidAmount.InexactFloat64())
		if err != nil {
			return err
		}
	}
	err := w.Append("", "TOTAL", "",
		summary.TotalCalculated.InexactFloat64(), summary.TotalPaid.InexactFloat64(), summary.TotalUnpaid.InexactFloat64())
	if err != nil {
		return err
	}

	if err := w.Sheet("Details", detailsHeader...); err != nil {
		return err
	}
	for _, p := range summary.Employees {
		for _, d := range p.Details {
			if err := w.Append(p.EmployeeName, d.Metric, d.Value, d.Rate, d.Amount); err != nil {
				return err
			}
		}
	}
	return nil
}

func build(w *xlsx.Writer, name string) (report.File, error) {
	data, err := w.Bytes()
	if err != nil {
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return report.File{Name: name, ContentType: report.ContentTypeXLSX, Data: data}, nil
}

func validate(req report.ReportRequest) (time.Time, time.Time, error) {
	if err := req.Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end, _ := validator.IsValidDateRange(req.StartDate, req.EndDate)
	return start, end, nil
}

func countryFilter(countryID *string) *string {
	if countryID == nil || *countryID == "" {
		return nil
	}
	return countryID
}
