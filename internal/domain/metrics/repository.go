package metrics

import (
	"context"
	"time"
)

type DailyMetricsRepository interface {
	// Upsert inserts a row or replaces the one with the same (date, country_id). The returned
	// row keeps the original id on replace.
	Upsert(ctx context.Context, m DailyMetrics) (DailyMetrics, error)
	GetByID(ctx context.Context, id string) (DailyMetrics, error)
	GetByDateAndCountry(ctx context.Context, date time.Time, countryID string) (DailyMetrics, error)
	List(ctx context.Context, filter DailyMetricsFilter) ([]DailyMetrics, int64, error)
	// ListByPeriod returns every row in [start, end], optionally scoped to one country.
	ListByPeriod(ctx context.Context, start, end time.Time, countryID *string) ([]DailyMetrics, error)
	Delete(ctx context.Context, id string) error
}
