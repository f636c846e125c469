package payroll

import (
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/settings"
)

// activity is the slice of daily metrics an employee is paid on, reduced to the figures
// the role strategies need.
type activity struct {
	TotalSpend     float64
	RdSumUsdt      float64
	FdCount        int
	ActiveDays     int
	ActiveProjects int
}

// summarize folds rows into an activity. A day or country counts as active when it
// reported any spend. ActiveProjects is at least 1.
func summarize(rows []metrics.DailyMetrics) activity {
	var a activity
	days := make(map[time.Time]struct{})
	countries := make(map[string]struct{})

	for _, m := range rows {
		a.TotalSpend += m.TotalSpend
		a.RdSumUsdt += m.RdSumUsdt
		a.FdCount += m.FdCount
		if m.TotalSpend > 0 {
			days[m.Date] = struct{}{}
			countries[m.CountryID] = struct{}{}
		}
	}

	a.ActiveDays = len(days)
	a.ActiveProjects = len(countries)
	if a.ActiveProjects == 0 {
		a.ActiveProjects = 1
	}
	return a
}

// strategy turns an employee's activity into payroll lines.
type strategy func(e employee.Employee, a activity, cfg settings.PayrollSettings) []payroll.Detail

func strategyFor(role employee.Role) strategy {
	switch role {
	case employee.RoleBuyer:
		return buyerStrategy
	case employee.RoleRdHandler:
		return rdHandlerStrategy
	case employee.RoleFdHandler:
		return fdHandlerStrategy
	case employee.RoleContent:
		return projectDaysStrategy(func(cfg settings.PayrollSettings) float64 { return cfg.ContentRate })
	case employee.RoleDesigner:
		return projectDaysStrategy(func(cfg settings.PayrollSettings) float64 { return cfg.DesignerRate })
	case employee.RoleReviewer:
		return projectDaysStrategy(func(cfg settings.PayrollSettings) float64 { return cfg.ReviewerRate })
	case employee.RoleHeadDesigner:
		return headDesignerStrategy
	case employee.RoleOther:
		return otherStrategy
	default:
		return nil
	}
}

// percentRate picks the override, then the first matching tier, then the settings rate.
func percentRate(override *float64, tiers []employee.RateTier, base float64, fallback float64) float64 {
	if override != nil {
		return *override
	}
	if rate, ok := employee.PickTierRate(tiers, base); ok {
		return rate
	}
	return fallback
}

func buyerStrategy(e employee.Employee, a activity, cfg settings.PayrollSettings) []payroll.Detail {
	rate := percentRate(e.PercentRate, e.BuyerTiers, a.TotalSpend, cfg.BuyerRate)
	return []payroll.Detail{{
		Metric: "total_spend",
		Value:  a.TotalSpend,
		Rate:   rate,
		Amount: float64(a.TotalSpend * rate / 100),
	}}
}

func rdHandlerStrategy(e employee.Employee, a activity, cfg settings.PayrollSettings) []payroll.Detail {
	rate := percentRate(e.PercentRate, e.RdTiers, a.RdSumUsdt, cfg.RdHandlerRate)
	return []payroll.Detail{{
		Metric: "rd_sum_usdt",
		Value:  a.RdSumUsdt,
		Rate:   rate,
		Amount: float64(a.RdSumUsdt * rate / 100),
	}}
}

func fdHandlerStrategy(e employee.Employee, a activity, cfg settings.PayrollSettings) []payroll.Detail {
	tiers := fdTiersFor(e, cfg.FdTiers)
	rate := tiers.Rate(a.FdCount)

	details := []payroll.Detail{{
		Metric: "fd_count",
		Value:  float64(a.FdCount),
		Rate:   rate,
		Amount: float64(float64(a.FdCount) * rate * cfg.FdMultiplier),
	}}
	if bonus := tiers.BonusFor(a.FdCount); bonus > 0 {
		details = append(details, payroll.Detail{
			Metric: "fd_bonus",
			Value:  float64(a.FdCount),
			Rate:   bonus,
			Amount: float64(bonus * cfg.FdMultiplier),
		})
	}
	return details
}

// fdTiersFor overlays the employee's FD overrides on the settings tiers. Thresholds
// between tiers always come from settings.
func fdTiersFor(e employee.Employee, base metrics.FdTiers) metrics.FdTiers {
	tiers := base
	if e.FdTier1Rate != nil {
		tiers.Tier1Rate = *e.FdTier1Rate
	}
	if e.FdTier2Rate != nil {
		tiers.Tier2Rate = *e.FdTier2Rate
	}
	if e.FdTier3Rate != nil {
		tiers.Tier3Rate = *e.FdTier3Rate
	}
	if e.FdBonusThreshold != nil {
		tiers.BonusThreshold = *e.FdBonusThreshold
	}
	if e.FdBonus != nil {
		tiers.Bonus = *e.FdBonus
	}
	return tiers
}

// projectDaysStrategy pays a flat rate per active day and active project.
func projectDaysStrategy(settingsRate func(settings.PayrollSettings) float64) strategy {
	return func(e employee.Employee, a activity, cfg settings.PayrollSettings) []payroll.Detail {
		rate := settingsRate(cfg)
		if e.FixedRate != nil {
			rate = *e.FixedRate
		}
		units := float64(a.ActiveDays * a.ActiveProjects)
		return []payroll.Detail{{
			Metric: "project_days",
			Value:  units,
			Rate:   rate,
			Amount: float64(units * rate),
		}}
	}
}

func headDesignerStrategy(e employee.Employee, a activity, cfg settings.PayrollSettings) []payroll.Detail {
	rate := cfg.HeadDesignerRate
	if e.FixedRate != nil {
		rate = *e.FixedRate
	}
	return []payroll.Detail{{
		Metric: "active_days",
		Value:  float64(a.ActiveDays),
		Rate:   rate,
		Amount: float64(float64(a.ActiveDays) * rate),
	}}
}

func otherStrategy(e employee.Employee, a activity, _ settings.PayrollSettings) []payroll.Detail {
	if e.FixedRate == nil {
		return nil
	}
	return []payroll.Detail{{
		Metric: "active_days",
		Value:  float64(a.ActiveDays),
		Rate:   *e.FixedRate,
		Amount: float64(float64(a.ActiveDays) * *e.FixedRate),
	}}
}
