package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	balanceRepo balance.BalanceRepository
	now         func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, balanceRepo balance.BalanceRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		balanceRepo:         balanceRepo,
		now:                 time.Now,
	}
}

// GetDashboard returns combined dashboard data using parallel goroutines,
// one query each.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, req dashboard.DashboardRequest) (*dashboard.DashboardResponse, error) {
	start, end, err := req.Validate(s.now())
	if err != nil {
		return nil, err
	}
	countryID := req.CountryID
	if countryID != nil && *countryID == "" {
		countryID = nil
	}

	var (
		totals    dashboard.TotalsResponse
		countries []dashboard.CountryBreakdownResponse
		daily     []dashboard.DailyPointResponse
		balances  []balance.BalanceResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Period totals
	g.Go(func() error {
		t, err := s.GetTotals(gCtx, start, end, countryID)
		if err != nil {
			return err
		}
		totals = toTotalsResponse(*t)
		return nil
	})

	// 2. Per-country breakdown
	g.Go(func() error {
		rows, err := s.GetCountryTotals(gCtx, start, end)
		if err != nil {
			return err
		}
		countries = make([]dashboard.CountryBreakdownResponse, 0, len(rows))
		for _, c := range rows {
			if countryID != nil && c.CountryID != *countryID {
				continue
			}
			countries = append(countries, dashboard.CountryBreakdownResponse{
				CountryID:      c.CountryID,
				CountryCode:    c.CountryCode,
				CountryName:    c.CountryName,
				TotalsResponse: toTotalsResponse(c.Totals),
			})
		}
		return nil
	})

	// 3. Daily series for the line chart
	g.Go(func() error {
		points, err := s.GetDailySeries(gCtx, start, end, countryID)
		if err != nil {
			return err
		}
		daily = make([]dashboard.DailyPointResponse, 0, len(points))
		for _, p := range points {
			daily = append(daily, dashboard.DailyPointResponse{
				Date:              p.Date.Format("2006-01-02"),
				TotalSpend:        p.TotalSpend,
				TotalRevenueUsdt:  p.TotalRevenueUsdt,
				TotalExpensesUsdt: p.TotalExpensesUsdt,
				NetProfit:         p.NetProfit,
			})
		}
		return nil
	})

	// 4. Balances snapshot
	g.Go(func() error {
		rows, err := s.balanceRepo.ListBalances(gCtx)
		if err != nil {
			return err
		}
		balances = make([]balance.BalanceResponse, 0, len(rows))
		for _, b := range rows {
			balances = append(balances, balance.NewBalanceResponse(b))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		CountryID: countryID,
		Totals:    totals,
		Countries: countries,
		Daily:     daily,
		Balances:  balances,
	}, nil
}

// toTotalsResponse derives ROI with the same guard as the daily calculator.
func toTotalsResponse(t dashboard.Totals) dashboard.TotalsResponse {
	return dashboard.TotalsResponse{
		Days:              t.Days,
		TotalSpend:        t.TotalSpend,
		AgencyFee:         t.AgencyFee,
		TotalRevenueUsdt:  t.TotalRevenueUsdt,
		TotalPayroll:      t.TotalPayroll,
		TotalExpensesUsdt: t.TotalExpensesUsdt,
		NetProfit:         t.NetProfit,
		Roi:               metrics.CalculateROI(t.TotalRevenueUsdt, t.TotalExpensesUsdt),
		FdCount:           t.FdCount,
	}
}
