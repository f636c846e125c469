package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger/ledgertest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	kz = "0190a3c4-0000-7000-8000-00000000000a"
	uz = "0190a3c4-0000-7000-8000-00000000000b"
)

type stubRepo struct {
	gotStart, gotEnd time.Time
	gotCountry       *string
	err              error
}

func (r *stubRepo) GetTotals(_ context.Context, start, end time.Time, countryID *string) (*dashboard.Totals, error) {
	r.gotStart, r.gotEnd, r.gotCountry = start, end, countryID
	if r.err != nil {
		return nil, r.err
	}
	return &dashboard.Totals{Days: 2, TotalSpend: 100, TotalRevenueUsdt: 200, TotalExpensesUsdt: 151, NetProfit: 49}, nil
}

func (r *stubRepo) GetCountryTotals(context.Context, time.Time, time.Time) ([]dashboard.CountryTotals, error) {
	return []dashboard.CountryTotals{
		{CountryID: kz, CountryCode: "KZ", Totals: dashboard.Totals{TotalSpend: 60}},
		{CountryID: uz, CountryCode: "UZ", Totals: dashboard.Totals{TotalSpend: 40}},
	}, nil
}

func (r *stubRepo) GetDailySeries(context.Context, time.Time, time.Time, *string) ([]dashboard.DailyPoint, error) {
	return []dashboard.DailyPoint{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), TotalSpend: 100},
	}, nil
}

func newService(repo *stubRepo) *DashboardServiceImpl {
	balances := ledgertest.NewBalanceRepository()
	balances.Seed(balance.TypeExchange, "EXCHANGE", decimal.NewFromInt(10))
	svc := NewDashboardService(repo, balances).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestDashboardService_DefaultsToCurrentMonth(t *testing.T) {
	repo := &stubRepo{}
	svc := newService(repo)

	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2024-02-01", resp.StartDate)
	assert.Equal(t, "2024-02-29", resp.EndDate)
	assert.Nil(t, repo.gotCountry)
	assert.InDelta(t, 0.3245, resp.Totals.Roi, 0.0001)
	assert.Len(t, resp.Countries, 2)
	require.Len(t, resp.Daily, 1)
	assert.Equal(t, "2024-03-01", resp.Daily[0].Date)
	require.Len(t, resp.Balances, 1)
	assert.Equal(t, "EXCHANGE", resp.Balances[0].Code)
}

func TestDashboardService_CountryScope(t *testing.T) {
	repo := &stubRepo{}
	svc := newService(repo)
	country := uz

	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{
		StartDate: "2024-03-01", EndDate: "2024-03-31", CountryID: &country,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.gotCountry)
	assert.Equal(t, uz, *repo.gotCountry)
	require.Len(t, resp.Countries, 1)
	assert.Equal(t, "UZ", resp.Countries[0].CountryCode)
}

func TestDashboardService_Errors(t *testing.T) {
	svc := newService(&stubRepo{})
	_, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{StartDate: "2024-03-31", EndDate: "2024-03-01"})
	assert.Error(t, err)

	boom := errors.New("db down")
	svc = newService(&stubRepo{err: boom})
	_, err = svc.GetDashboard(context.Background(), dashboard.DashboardRequest{})
	assert.ErrorIs(t, err, boom)
}
