package metrics

// Commission and fee constants. These are part of the historical formulas and are not
// configurable; payroll rates that operators can tune live in the settings package.
const (
	AgencyFeeRateTrust    = 0.09
	AgencyFeeRateCrossgif = 0.08
	AgencyFeeRateFbm      = 0.08

	PriemkaCommissionRate = 0.15
	RdHandlerRate         = 0.04
	BuyerRate             = 0.12
	FdMultiplier          = 1.2
)

// FdTiers parameterizes the FD handler formula. The calculator uses DefaultFdTiers;
// the payroll engine passes per-employee or settings overrides.
type FdTiers struct {
	Tier1Rate      float64
	Tier2Rate      float64
	Tier3Rate      float64
	Tier2Threshold int
	Tier3Threshold int
	BonusThreshold int
	Bonus          float64
}

var DefaultFdTiers = FdTiers{
	Tier1Rate:      3,
	Tier2Rate:      4,
	Tier3Rate:      5,
	Tier2Threshold: 5,
	Tier3Threshold: 10,
	BonusThreshold: 5,
	Bonus:          15,
}

// Rate returns the per-FD rate for fdCount.
func (t FdTiers) Rate(fdCount int) float64 {
	switch {
	case fdCount >= t.Tier3Threshold:
		return t.Tier3Rate
	case fdCount >= t.Tier2Threshold:
		return t.Tier2Rate
	default:
		return t.Tier1Rate
	}
}

// BonusFor returns the flat bonus earned at fdCount.
func (t FdTiers) BonusFor(fdCount int) float64 {
	if fdCount >= t.BonusThreshold {
		return t.Bonus
	}
	return 0
}

func CalculateTotalSpend(spendTrust, spendCrossgif, spendFbm float64) float64 {
	return spendTrust + spendCrossgif + spendFbm
}

// Every product in this file is wrapped in float64(...) so it is rounded before the
// next addition. Without it the compiler may fuse x*y+z into one FMA instruction and
// results would differ by architecture.

func CalculateAgencyFee(spendTrust, spendCrossgif, spendFbm float64) float64 {
	return float64(spendTrust*AgencyFeeRateTrust) +
		float64(spendCrossgif*AgencyFeeRateCrossgif) +
		float64(spendFbm*AgencyFeeRateFbm)
}

// CalculateExchangeRate returns local units per USDT, or 0 when usdt is not positive.
func CalculateExchangeRate(local, usdt float64) float64 {
	if usdt > 0 {
		return local / usdt
	}
	return 0
}

func CalculateCommissionPriemka(revenueUsdtPriemka float64) float64 {
	return float64(revenueUsdtPriemka * PriemkaCommissionRate)
}

func CalculateTotalRevenueUsdt(revenueUsdtPriemka, revenueUsdtOwn float64) float64 {
	return revenueUsdtPriemka + revenueUsdtOwn
}

// ConvertToUsdt divides a local amount by a rate, yielding 0 for a non-positive rate.
func ConvertToUsdt(local, rate float64) float64 {
	if rate > 0 {
		return local / rate
	}
	return 0
}

// CalculateRdSumLocal is the own-channel revenue left after first deposits. It can be negative.
func CalculateRdSumLocal(revenueLocalOwn, fdSumLocal float64) float64 {
	return revenueLocalOwn - fdSumLocal
}

func CalculatePayrollRdHandler(rdSumUsdt float64) float64 {
	return float64(rdSumUsdt * RdHandlerRate)
}

func CalculatePayrollFdHandler(fdCount int, multiplier float64) float64 {
	return FdHandlerPayroll(fdCount, DefaultFdTiers, multiplier)
}

// FdHandlerPayroll computes ((fdCount * tierRate) + bonus) * multiplier.
func FdHandlerPayroll(fdCount int, tiers FdTiers, multiplier float64) float64 {
	return float64((float64(float64(fdCount)*tiers.Rate(fdCount)) + tiers.BonusFor(fdCount)) * multiplier)
}

func CalculatePayrollBuyer(totalSpend float64) float64 {
	return float64(totalSpend * BuyerRate)
}

func CalculateTotalExpenses(commissionPriemka, totalSpend, agencyFee, totalPayroll, chatterfyCost, additionalExpenses float64) float64 {
	return commissionPriemka + totalSpend + agencyFee + totalPayroll + chatterfyCost + additionalExpenses
}

func CalculateNetProfit(totalRevenueUsdt, totalExpensesUsdt float64) float64 {
	return totalRevenueUsdt - totalExpensesUsdt
}

// CalculateROI returns (revenue - expenses) / expenses, or 0 when expenses are not positive.
func CalculateROI(totalRevenueUsdt, totalExpensesUsdt float64) float64 {
	if totalExpensesUsdt > 0 {
		return (totalRevenueUsdt - totalExpensesUsdt) / totalExpensesUsdt
	}
	return 0
}

// Calculate derives every computed field of a daily metrics row from its raw inputs.
func Calculate(in DailyMetricsInput) CalculatedMetrics {
	var c CalculatedMetrics

	c.TotalSpend = CalculateTotalSpend(in.SpendTrust, in.SpendCrossgif, in.SpendFbm)
	c.AgencyFee = CalculateAgencyFee(in.SpendTrust, in.SpendCrossgif, in.SpendFbm)

	c.ExchangeRatePriemka = CalculateExchangeRate(in.RevenueLocalPriemka, in.RevenueUsdtPriemka)
	c.ExchangeRateOwn = CalculateExchangeRate(in.RevenueLocalOwn, in.RevenueUsdtOwn)

	c.CommissionPriemka = CalculateCommissionPriemka(in.RevenueUsdtPriemka)
	c.TotalRevenueUsdt = CalculateTotalRevenueUsdt(in.RevenueUsdtPriemka, in.RevenueUsdtOwn)

	c.FdSumUsdt = ConvertToUsdt(in.FdSumLocal, c.ExchangeRateOwn)
	c.RdSumLocal = CalculateRdSumLocal(in.RevenueLocalOwn, in.FdSumLocal)
	c.RdSumUsdt = ConvertToUsdt(c.RdSumLocal, c.ExchangeRateOwn)

	c.PayrollRdHandler = CalculatePayrollRdHandler(c.RdSumUsdt)
	c.PayrollFdHandler = CalculatePayrollFdHandler(in.FdCount, FdMultiplier)
	c.PayrollBuyer = CalculatePayrollBuyer(c.TotalSpend)
	c.TotalPayroll = float64(c.PayrollRdHandler) + float64(c.PayrollFdHandler) + float64(c.PayrollBuyer) +
		in.PayrollContent + in.PayrollDesigner + in.PayrollReviewer + in.PayrollHeadDesigner

	c.TotalExpensesUsdt = CalculateTotalExpenses(c.CommissionPriemka, c.TotalSpend, c.AgencyFee,
		c.TotalPayroll, in.ChatterfyCost, in.AdditionalExpenses)
	c.NetProfitMath = CalculateNetProfit(c.TotalRevenueUsdt, c.TotalExpensesUsdt)
	c.Roi = CalculateROI(c.TotalRevenueUsdt, c.TotalExpensesUsdt)

	return c
}
