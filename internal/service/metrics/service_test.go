package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger/ledgertest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countryID = "0190a3c4-5b6d-7e8f-9a0b-1c2d3e4f5a6b"

type memoryMetricsRepo struct {
	mu   sync.Mutex
	rows map[string]metrics.DailyMetrics
}

func newMemoryMetricsRepo() *memoryMetricsRepo {
	return &memoryMetricsRepo{rows: map[string]metrics.DailyMetrics{}}
}

func (r *memoryMetricsRepo) Upsert(_ context.Context, m metrics.DailyMetrics) (metrics.DailyMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.rows {
		if existing.Date.Equal(m.Date) && existing.CountryID == m.CountryID {
			m.ID = id
			m.CreatedAt = existing.CreatedAt
		}
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()
	r.rows[m.ID] = m
	return m, nil
}

func (r *memoryMetricsRepo) GetByID(_ context.Context, id string) (metrics.DailyMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return metrics.DailyMetrics{}, metrics.ErrDailyMetricsNotFound
	}
	return m, nil
}

func (r *memoryMetricsRepo) GetByDateAndCountry(_ context.Context, date time.Time, countryID string) (metrics.DailyMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.rows {
		if m.Date.Equal(date) && m.CountryID == countryID {
			return m, nil
		}
	}
	return metrics.DailyMetrics{}, metrics.ErrDailyMetricsNotFound
}

func (r *memoryMetricsRepo) List(context.Context, metrics.DailyMetricsFilter) ([]metrics.DailyMetrics, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []metrics.DailyMetrics
	for _, m := range r.rows {
		result = append(result, m)
	}
	return result, int64(len(result)), nil
}

func (r *memoryMetricsRepo) ListByPeriod(_ context.Context, start, end time.Time, _ *string) ([]metrics.DailyMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []metrics.DailyMetrics
	for _, m := range r.rows {
		if !m.Date.Before(start) && !m.Date.After(end) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *memoryMetricsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return metrics.ErrDailyMetricsNotFound
	}
	delete(r.rows, id)
	return nil
}

func newService(seed ...string) (metrics.DailyMetricsService, *ledgertest.BalanceRepository, *memoryMetricsRepo) {
	balances := ledgertest.NewBalanceRepository()
	for _, code := range seed {
		balances.Seed(balance.TypeAgency, code, decimal.NewFromInt(1000))
	}
	repo := newMemoryMetricsRepo()
	l := ledger.NewLedgerService(&ledgertest.Transactor{}, &ledgertest.Locker{}, balances)
	return NewDailyMetricsService(l, repo), balances, repo
}

func upsertRequest(trust, crossgif, fbm float64) metrics.UpsertDailyMetricsRequest {
	return metrics.UpsertDailyMetricsRequest{
		Date:      "2024-03-01",
		CountryID: countryID,
		MetricsValues: metrics.MetricsValues{
			SpendTrust:         trust,
			SpendCrossgif:      crossgif,
			SpendFbm:           fbm,
			RevenueLocalOwn:    100000,
			RevenueUsdtOwn:     200,
			RevenueUsdtPriemka: 300,
			FdCount:            6,
		},
	}
}

func TestPreviewMatchesCalculator(t *testing.T) {
	svc, _, _ := newService()
	req := upsertRequest(100, 50, 0)

	got, err := svc.Preview(context.Background(), metrics.CalculateRequest{MetricsValues: req.MetricsValues})
	require.NoError(t, err)
	assert.Equal(t, metrics.NewCalculatedMetricsResponse(metrics.Calculate(req.ToInput())), got)
	assert.Equal(t, 150.0, got.TotalSpend)
}

func TestPreviewRejectsNegativeValues(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Preview(context.Background(), metrics.CalculateRequest{
		MetricsValues: metrics.MetricsValues{SpendTrust: -1},
	})
	assert.Error(t, err)
}

func TestUpsertPostsChannelSpends(t *testing.T) {
	svc, balances, _ := newService("TRUST", "CROSSGIF", "FBM")

	resp, err := svc.Upsert(context.Background(), upsertRequest(100, 50.5, 0))
	require.NoError(t, err)
	assert.Equal(t, 150.5, resp.TotalSpend)

	entries := balances.Transactions()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, balance.TransactionSpend, e.Type)
		require.NotNil(t, e.DailyMetricsID)
		assert.Equal(t, resp.ID, *e.DailyMetricsID)
	}
	assert.True(t, decimal.NewFromInt(900).Equal(balances.Amount("TRUST")))
	assert.True(t, decimal.RequireFromString("949.5").Equal(balances.Amount("CROSSGIF")))
	assert.True(t, decimal.NewFromInt(1000).Equal(balances.Amount("FBM")))
}

func TestUpsertReplacesEntriesAndKeepsID(t *testing.T) {
	svc, balances, repo := newService("TRUST", "CROSSGIF", "FBM")
	ctx := context.Background()

	first, err := svc.Upsert(ctx, upsertRequest(100, 50, 25))
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, upsertRequest(40, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.rows, 1)
	assert.Len(t, balances.Transactions(), 1)
	assert.True(t, decimal.NewFromInt(960).Equal(balances.Amount("TRUST")))
	assert.True(t, decimal.NewFromInt(1000).Equal(balances.Amount("CROSSGIF")))
	assert.True(t, decimal.NewFromInt(1000).Equal(balances.Amount("FBM")))
}

func TestUpsertSkipsMissingBalance(t *testing.T) {
	svc, balances, _ := newService("TRUST")

	_, err := svc.Upsert(context.Background(), upsertRequest(10, 20, 30))
	require.NoError(t, err)
	require.Len(t, balances.Transactions(), 1)
	assert.True(t, decimal.NewFromInt(990).Equal(balances.Amount("TRUST")))
}

func TestDeleteRevertsSpends(t *testing.T) {
	svc, balances, repo := newService("TRUST", "CROSSGIF", "FBM")
	ctx := context.Background()

	created, err := svc.Upsert(ctx, upsertRequest(100, 50, 25))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDailyMetrics(ctx, created.ID))
	assert.Empty(t, repo.rows)
	assert.Empty(t, balances.Transactions())
	for _, code := range []string{"TRUST", "CROSSGIF", "FBM"} {
		assert.True(t, decimal.NewFromInt(1000).Equal(balances.Amount(code)), code)
	}

	assert.ErrorIs(t, svc.DeleteDailyMetrics(ctx, created.ID), metrics.ErrDailyMetricsNotFound)
}
