package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

const totalsColumns = `
	COUNT(DISTINCT m.date),
	COALESCE(SUM(m.total_spend), 0),
	COALESCE(SUM(m.agency_fee), 0),
	COALESCE(SUM(m.total_revenue_usdt), 0),
	COALESCE(SUM(m.total_payroll), 0),
	COALESCE(SUM(m.total_expenses_usdt), 0),
	COALESCE(SUM(m.net_profit_math), 0),
	COALESCE(SUM(m.fd_count), 0)`

// GetTotals returns the period sums in a single query
func (r *dashboardRepositoryImpl) GetTotals(ctx context.Context, start, end time.Time, countryID *string) (*dashboard.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + totalsColumns + ` FROM daily_metrics m WHERE m.date BETWEEN $1 AND $2`
	args := []interface{}{start, end}
	if countryID != nil && *countryID != "" {
		query += ` AND m.country_id = $3`
		args = append(args, *countryID)
	}

	var t dashboard.Totals
	err := q.QueryRow(ctx, query, args...).Scan(
		&t.Days, &t.TotalSpend, &t.AgencyFee, &t.TotalRevenueUsdt,
		&t.TotalPayroll, &t.TotalExpensesUsdt, &t.NetProfit, &t.FdCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard totals: %w", err)
	}
	return &t, nil
}

// GetCountryTotals returns one row per country with data in the period
func (r *dashboardRepositoryImpl) GetCountryTotals(ctx context.Context, start, end time.Time) ([]dashboard.CountryTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.code, c.name, ` + totalsColumns + `
		FROM daily_metrics m
		JOIN countries c ON c.id = m.country_id
		WHERE m.date BETWEEN $1 AND $2
		GROUP BY c.id, c.code, c.name
		ORDER BY c.code
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get country totals: %w", err)
	}
	defer rows.Close()

	var result []dashboard.CountryTotals
	for rows.Next() {
		var ct dashboard.CountryTotals
		if err := rows.Scan(
			&ct.CountryID, &ct.CountryCode, &ct.CountryName,
			&ct.Days, &ct.TotalSpend, &ct.AgencyFee, &ct.TotalRevenueUsdt,
			&ct.TotalPayroll, &ct.TotalExpensesUsdt, &ct.NetProfit, &ct.FdCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan country totals: %w", err)
		}
		result = append(result, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating country totals: %w", err)
	}
	return result, nil
}

// GetDailySeries returns one point per date with data in the period
func (r *dashboardRepositoryImpl) GetDailySeries(ctx context.Context, start, end time.Time, countryID *string) ([]dashboard.DailyPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.date,
			COALESCE(SUM(m.total_spend), 0),
			COALESCE(SUM(m.total_revenue_usdt), 0),
			COALESCE(SUM(m.total_expenses_usdt), 0),
			COALESCE(SUM(m.net_profit_math), 0)
		FROM daily_metrics m
		WHERE m.date BETWEEN $1 AND $2`
	args := []interface{}{start, end}
	if countryID != nil && *countryID != "" {
		query += ` AND m.country_id = $3`
		args = append(args, *countryID)
	}
	query += ` GROUP BY m.date ORDER BY m.date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily series: %w", err)
	}
	defer rows.Close()

	var points []dashboard.DailyPoint
	for rows.Next() {
		var p dashboard.DailyPoint
		if err := rows.Scan(&p.Date, &p.TotalSpend, &p.TotalRevenueUsdt, &p.TotalExpensesUsdt, &p.NetProfit); err != nil {
			return nil, fmt.Errorf("failed to scan daily point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily series: %w", err)
	}
	return points, nil
}
