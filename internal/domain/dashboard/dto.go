package dashboard

import (
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
)

// DashboardRequest selects the period and optional country. Empty dates default to
// the current month.
type DashboardRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	CountryID *string `json:"country_id,omitempty"`
}

func (r *DashboardRequest) Validate(now time.Time) (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	if r.StartDate != "" {
		parsed, ok := validator.IsValidDate(r.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		start = parsed
	}
	if r.EndDate != "" {
		parsed, ok := validator.IsValidDate(r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		end = parsed
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if r.CountryID != nil && *r.CountryID != "" && !validator.IsValidUUID(*r.CountryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "country_id",
			Message: "country_id must be a valid UUID",
		})
	}

	return start, end, errs.OrNil()
}

// ========== TOTALS ==========

type TotalsResponse struct {
	Days              int64   `json:"days"`
	TotalSpend        float64 `json:"total_spend"`
	AgencyFee         float64 `json:"agency_fee"`
	TotalRevenueUsdt  float64 `json:"total_revenue_usdt"`
	TotalPayroll      float64 `json:"total_payroll"`
	TotalExpensesUsdt float64 `json:"total_expenses_usdt"`
	NetProfit         float64 `json:"net_profit"`
	Roi               float64 `json:"roi"`
	FdCount           int64   `json:"fd_count"`
}

// ========== PER COUNTRY ==========

type CountryBreakdownResponse struct {
	CountryID   string `json:"country_id"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	TotalsResponse
}

// ========== DAILY SERIES (line chart) ==========

type DailyPointResponse struct {
	Date              string  `json:"date"` // Format: "YYYY-MM-DD"
	TotalSpend        float64 `json:"total_spend"`
	TotalRevenueUsdt  float64 `json:"total_revenue_usdt"`
	TotalExpensesUsdt float64 `json:"total_expenses_usdt"`
	NetProfit         float64 `json:"net_profit"`
}

// ========== COMBINED DASHBOARD ==========

type DashboardResponse struct {
	StartDate string                     `json:"start_date"`
	EndDate   string                     `json:"end_date"`
	CountryID *string                    `json:"country_id,omitempty"`
	Totals    TotalsResponse             `json:"totals"`
	Countries []CountryBreakdownResponse `json:"countries"`
	Daily     []DailyPointResponse       `json:"daily"`
	Balances  []balance.BalanceResponse  `json:"balances"`
}
