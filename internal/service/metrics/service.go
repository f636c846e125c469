package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DailyMetricsServiceImpl struct {
	ledger      balance.Ledger
	metricsRepo metrics.DailyMetricsRepository
}

func NewDailyMetricsService(ledger balance.Ledger, metricsRepo metrics.DailyMetricsRepository) metrics.DailyMetricsService {
	return &DailyMetricsServiceImpl{
		ledger:      ledger,
		metricsRepo: metricsRepo,
	}
}

func (s *DailyMetricsServiceImpl) Preview(ctx context.Context, req metrics.CalculateRequest) (metrics.CalculatedMetricsResponse, error) {
	if err := req.Validate(); err != nil {
		return metrics.CalculatedMetricsResponse{}, err
	}
	return metrics.NewCalculatedMetricsResponse(metrics.Calculate(req.ToInput())), nil
}

// Upsert stores the row and replaces its agency spend entries in the same transaction.
func (s *DailyMetricsServiceImpl) Upsert(ctx context.Context, req metrics.UpsertDailyMetricsRequest) (metrics.DailyMetricsResponse, error) {
	if err := req.Validate(); err != nil {
		return metrics.DailyMetricsResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return metrics.DailyMetricsResponse{}, fmt.Errorf("failed to generate daily metrics id: %w", err)
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	input := req.ToInput()
	row := metrics.DailyMetrics{
		ID:                id.String(),
		Date:              date,
		CountryID:         req.CountryID,
		DailyMetricsInput: input,
		CalculatedMetrics: metrics.Calculate(input),
	}

	var saved metrics.DailyMetrics
	err = s.ledger.Atomically(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.metricsRepo.Upsert(ctx, row)
		if err != nil {
			return err
		}

		link := balance.DailyMetricsLink(saved.ID)
		if _, err := s.ledger.RevertLinked(ctx, link); err != nil {
			return err
		}
		return s.postSpends(ctx, saved, link)
	})
	if err != nil {
		return metrics.DailyMetricsResponse{}, err
	}

	return metrics.NewDailyMetricsResponse(saved), nil
}

// postSpends debits each agency balance by the spend reported for its channel. A channel
// without a balance is skipped.
func (s *DailyMetricsServiceImpl) postSpends(ctx context.Context, m metrics.DailyMetrics, link balance.Link) error {
	for _, spend := range m.ChannelSpends() {
		if spend.Amount <= 0 {
			continue
		}

		_, err := s.ledger.Post(ctx, balance.Posting{
			BalanceCode: string(spend.Channel),
			Type:        balance.TransactionSpend,
			Amount:      decimal.NewFromFloat(spend.Amount),
			Date:        m.Date,
			Description: fmt.Sprintf("%s spend %s", spend.Channel, m.Date.Format("2006-01-02")),
			Link:        &link,
		})
		if errors.Is(err, balance.ErrBalanceNotFound) {
			slog.Warn("no agency balance for channel, spend not posted",
				"channel", spend.Channel,
				"daily_metrics_id", m.ID,
			)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *DailyMetricsServiceImpl) GetDailyMetrics(ctx context.Context, id string) (metrics.DailyMetricsResponse, error) {
	m, err := s.metricsRepo.GetByID(ctx, id)
	if err != nil {
		return metrics.DailyMetricsResponse{}, err
	}
	return metrics.NewDailyMetricsResponse(m), nil
}

func (s *DailyMetricsServiceImpl) ListDailyMetrics(ctx context.Context, filter metrics.DailyMetricsFilter) (metrics.ListDailyMetricsResponse, error) {
	if err := filter.Validate(); err != nil {
		return metrics.ListDailyMetricsResponse{}, err
	}

	rows, total, err := s.metricsRepo.List(ctx, filter)
	if err != nil {
		return metrics.ListDailyMetricsResponse{}, err
	}

	data := make([]metrics.DailyMetricsResponse, 0, len(rows))
	for _, m := range rows {
		data = append(data, metrics.NewDailyMetricsResponse(m))
	}

	return metrics.ListDailyMetricsResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *DailyMetricsServiceImpl) DeleteDailyMetrics(ctx context.Context, id string) error {
	return s.ledger.Atomically(ctx, func(ctx context.Context) error {
		if _, err := s.metricsRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if _, err := s.ledger.RevertLinked(ctx, balance.DailyMetricsLink(id)); err != nil {
			return err
		}
		return s.metricsRepo.Delete(ctx, id)
	})
}
