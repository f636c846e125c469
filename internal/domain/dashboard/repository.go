package dashboard

import (
	"context"
	"time"
)

// Totals aggregates daily metrics over a period
type Totals struct {
	Days              int64
	TotalSpend        float64
	AgencyFee         float64
	TotalRevenueUsdt  float64
	TotalPayroll      float64
	TotalExpensesUsdt float64
	NetProfit         float64
	FdCount           int64
}

type CountryTotals struct {
	CountryID   string
	CountryCode string
	CountryName string
	Totals
}

type DailyPoint struct {
	Date              time.Time
	TotalSpend        float64
	TotalRevenueUsdt  float64
	TotalExpensesUsdt float64
	NetProfit         float64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetTotals sums the period, optionally for one country, in a single query
	GetTotals(ctx context.Context, start, end time.Time, countryID *string) (*Totals, error)

	// GetCountryTotals groups the period by country
	GetCountryTotals(ctx context.Context, start, end time.Time) ([]CountryTotals, error)

	// GetDailySeries groups the period by date
	GetDailySeries(ctx context.Context, start, end time.Time, countryID *string) ([]DailyPoint, error)
}
