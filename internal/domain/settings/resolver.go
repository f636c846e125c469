package settings

import (
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/numeric"
)

// Resolve turns raw stored values into PayrollSettings. A value that is missing, empty,
// unparseable or zero resolves to its default; otherwise its leading numeric prefix wins.
func Resolve(values map[string]string) PayrollSettings {
	get := func(key string) float64 {
		return numeric.FloatOr(values[key], Defaults[key])
	}

	return PayrollSettings{
		BuyerRate:        get(KeyBuyerRate),
		RdHandlerRate:    get(KeyRdHandlerRate),
		ContentRate:      get(KeyContentRate),
		DesignerRate:     get(KeyDesignerRate),
		ReviewerRate:     get(KeyReviewerRate),
		HeadDesignerRate: get(KeyHeadDesignerRate),
		FdTiers: metrics.FdTiers{
			Tier1Rate:      get(KeyFdTier1Rate),
			Tier2Rate:      get(KeyFdTier2Rate),
			Tier3Rate:      get(KeyFdTier3Rate),
			Tier2Threshold: int(get(KeyFdTier2Threshold)),
			Tier3Threshold: int(get(KeyFdTier3Threshold)),
			BonusThreshold: int(get(KeyFdBonusThreshold)),
			Bonus:          get(KeyFdBonus),
		},
		FdMultiplier: get(KeyFdMultiplier),
	}
}

// DefaultPayrollSettings is the resolution of an empty settings table.
func DefaultPayrollSettings() PayrollSettings {
	return Resolve(nil)
}
