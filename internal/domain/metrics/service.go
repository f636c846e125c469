package metrics

import "context"

type DailyMetricsService interface {
	// Preview runs the calculator over raw figures without persisting them
	Preview(ctx context.Context, req CalculateRequest) (CalculatedMetricsResponse, error)

	// Upsert stores the row for (date, country), recomputes every derived field and
	// re-derives the linked agency spend transactions
	Upsert(ctx context.Context, req UpsertDailyMetricsRequest) (DailyMetricsResponse, error)

	GetDailyMetrics(ctx context.Context, id string) (DailyMetricsResponse, error)
	ListDailyMetrics(ctx context.Context, filter DailyMetricsFilter) (ListDailyMetricsResponse, error)

	// DeleteDailyMetrics removes the row and reverts its spend transactions
	DeleteDailyMetrics(ctx context.Context, id string) error
}
