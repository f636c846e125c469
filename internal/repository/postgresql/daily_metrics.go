package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dailyMetricsRepositoryImpl struct {
	db *database.DB
}

func NewDailyMetricsRepository(db *database.DB) metrics.DailyMetricsRepository {
	return &dailyMetricsRepositoryImpl{db: db}
}

// Raw and calculated columns in the order of dailyMetricsValues.
const dailyMetricsValueColumns = `
	spend_trust, spend_crossgif, spend_fbm, revenue_local_priemka, revenue_usdt_priemka,
	revenue_local_own, revenue_usdt_own, fd_count, fd_sum_local, chatterfy_cost, additional_expenses,
	payroll_content, payroll_designer, payroll_reviewer, payroll_head_designer,
	total_spend, agency_fee, exchange_rate_priemka, exchange_rate_own, commission_priemka,
	total_revenue_usdt, fd_sum_usdt, rd_sum_local, rd_sum_usdt, payroll_rd_handler,
	payroll_fd_handler, payroll_buyer, total_payroll, total_expenses_usdt, net_profit_math, roi`

const dailyMetricsSelect = `
	SELECT m.id, m.date, m.country_id,
		m.spend_trust, m.spend_crossgif, m.spend_fbm, m.revenue_local_priemka, m.revenue_usdt_priemka,
		m.revenue_local_own, m.revenue_usdt_own, m.fd_count, m.fd_sum_local, m.chatterfy_cost, m.additional_expenses,
		m.payroll_content, m.payroll_designer, m.payroll_reviewer, m.payroll_head_designer,
		m.total_spend, m.agency_fee, m.exchange_rate_priemka, m.exchange_rate_own, m.commission_priemka,
		m.total_revenue_usdt, m.fd_sum_usdt, m.rd_sum_local, m.rd_sum_usdt, m.payroll_rd_handler,
		m.payroll_fd_handler, m.payroll_buyer, m.total_payroll, m.total_expenses_usdt, m.net_profit_math, m.roi,
		m.created_at, m.updated_at, c.code, c.name`

func dailyMetricsValues(m metrics.DailyMetrics) []interface{} {
	in, calc := m.DailyMetricsInput, m.CalculatedMetrics
	return []interface{}{
		in.SpendTrust, in.SpendCrossgif, in.SpendFbm, in.RevenueLocalPriemka, in.RevenueUsdtPriemka,
		in.RevenueLocalOwn, in.RevenueUsdtOwn, in.FdCount, in.FdSumLocal, in.ChatterfyCost, in.AdditionalExpenses,
		in.PayrollContent, in.PayrollDesigner, in.PayrollReviewer, in.PayrollHeadDesigner,
		calc.TotalSpend, calc.AgencyFee, calc.ExchangeRatePriemka, calc.ExchangeRateOwn, calc.CommissionPriemka,
		calc.TotalRevenueUsdt, calc.FdSumUsdt, calc.RdSumLocal, calc.RdSumUsdt, calc.PayrollRdHandler,
		calc.PayrollFdHandler, calc.PayrollBuyer, calc.TotalPayroll, calc.TotalExpensesUsdt, calc.NetProfitMath, calc.Roi,
	}
}

func scanDailyMetrics(row pgx.Row) (metrics.DailyMetrics, error) {
	var m metrics.DailyMetrics
	in, calc := &m.DailyMetricsInput, &m.CalculatedMetrics
	err := row.Scan(
		&m.ID, &m.Date, &m.CountryID,
		&in.SpendTrust, &in.SpendCrossgif, &in.SpendFbm, &in.RevenueLocalPriemka, &in.RevenueUsdtPriemka,
		&in.RevenueLocalOwn, &in.RevenueUsdtOwn, &in.FdCount, &in.FdSumLocal, &in.ChatterfyCost, &in.AdditionalExpenses,
		&in.PayrollContent, &in.PayrollDesigner, &in.PayrollReviewer, &in.PayrollHeadDesigner,
		&calc.TotalSpend, &calc.AgencyFee, &calc.ExchangeRatePriemka, &calc.ExchangeRateOwn, &calc.CommissionPriemka,
		&calc.TotalRevenueUsdt, &calc.FdSumUsdt, &calc.RdSumLocal, &calc.RdSumUsdt, &calc.PayrollRdHandler,
		&calc.PayrollFdHandler, &calc.PayrollBuyer, &calc.TotalPayroll, &calc.TotalExpensesUsdt, &calc.NetProfitMath, &calc.Roi,
		&m.CreatedAt, &m.UpdatedAt, &m.CountryCode, &m.CountryName,
	)
	return m, err
}

func collectDailyMetrics(rows pgx.Rows) ([]metrics.DailyMetrics, error) {
	defer rows.Close()

	var result []metrics.DailyMetrics
	for rows.Next() {
		m, err := scanDailyMetrics(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily metrics: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily metrics: %w", err)
	}
	return result, nil
}

// Upsert implements metrics.DailyMetricsRepository.
func (r *dailyMetricsRepositoryImpl) Upsert(ctx context.Context, m metrics.DailyMetrics) (metrics.DailyMetrics, error) {
	q := GetQuerier(ctx, r.db)

	columns := strings.Split(strings.Join(strings.Fields(dailyMetricsValueColumns), ""), ",")
	placeholders := make([]string, 0, len(columns))
	updates := make([]string, 0, len(columns))
	for i, col := range columns {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+4))
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(`
		WITH m AS (
			INSERT INTO daily_metrics (id, date, country_id, %s)
			VALUES ($1, $2, $3, %s)
			ON CONFLICT (date, country_id) DO UPDATE
			SET %s, updated_at = NOW()
			RETURNING *
		)
		%s
		FROM m
		JOIN countries c ON c.id = m.country_id`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
		dailyMetricsSelect,
	)

	args := append([]interface{}{m.ID, m.Date, m.CountryID}, dailyMetricsValues(m)...)
	saved, err := scanDailyMetrics(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isForeignKeyViolation(err) {
			return metrics.DailyMetrics{}, metrics.ErrCountryNotFound
		}
		return metrics.DailyMetrics{}, fmt.Errorf("failed to upsert daily metrics: %w", err)
	}
	return saved, nil
}

// GetByID implements metrics.DailyMetricsRepository.
func (r *dailyMetricsRepositoryImpl) GetByID(ctx context.Context, id string) (metrics.DailyMetrics, error) {
	q := GetQuerier(ctx, r.db)

	query := dailyMetricsSelect + `
		FROM daily_metrics m
		JOIN countries c ON c.id = m.country_id
		WHERE m.id = $1`

	found, err := scanDailyMetrics(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return metrics.DailyMetrics{}, metrics.ErrDailyMetricsNotFound
		}
		return metrics.DailyMetrics{}, fmt.Errorf("failed to get daily metrics %s: %w", id, err)
	}
	return found, nil
}

// GetByDateAndCountry implements metrics.DailyMetricsRepository.
func (r *dailyMetricsRepositoryImpl) GetByDateAndCountry(ctx context.Context, date time.Time, countryID string) (metrics.DailyMetrics, error) {
	q := GetQuerier(ctx, r.db)

	query := dailyMetricsSelect + `
		FROM daily_metrics m
		JOIN countries c ON c.id = m.country_id
		WHERE m.date = $1 AND m.country_id = $2`

	found, err := scanDailyMetrics(q.QueryRow(ctx, query, date, countryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return metrics.DailyMetrics{}, metrics.ErrDailyMetricsNotFound
		}
		return metrics.DailyMetrics{}, fmt.Errorf("failed to get daily metrics for %s: %w", date.Format("2006-01-02"), err)
	}
	return found, nil
}

// List implements metrics.DailyMetricsRepository.
func (r *dailyMetricsRepositoryImpl) List(ctx context.Context, filter metrics.DailyMetricsFilter) ([]metrics.DailyMetrics, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.CountryID != nil && *filter.CountryID != "" {
		conditions = append(conditions, fmt.Sprintf("m.country_id = $%d", argIdx))
		args = append(args, *filter.CountryID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("m.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("m.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM daily_metrics m WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily metrics: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s
		FROM daily_metrics m
		JOIN countries c ON c.id = m.country_id
		WHERE %s
		ORDER BY m.date DESC, c.code ASC
		LIMIT $%d OFFSET $%d`, dailyMetricsSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily metrics: %w", err)
	}
	result, err := collectDailyMetrics(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// ListByPeriod implements metrics.DailyMetricsRepository.
func (r *dailyMetricsRepositoryImpl) ListByPeriod(ctx context.Context, start, end time.Time, countryID *string) ([]metrics.DailyMetrics, error) {
	q := GetQuerier(ctx, r.db)

	query := dailyMetricsSelect + `
		FROM daily_metrics m
		JOIN countries c ON c.id = m.country_id
		WHERE m.date BETWEEN $1 AND $2`
	args := []interface{}{start, end}
	if countryID != nil && *countryID != "" {
		query += ` AND m.country_id = $3`
		args = append(args, *countryID)
	}
	query += ` ORDER BY m.date ASC, c.code ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily metrics by period: %w", err)
	}
	return collectDailyMetrics(rows)
}

// Delete implements metrics.DailyMetricsRepository.
func (r *dailyMetricsRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM daily_metrics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete daily metrics %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return metrics.ErrDailyMetricsNotFound
	}
	return nil
}
