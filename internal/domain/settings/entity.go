package settings

import (
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
)

// Setting is a raw row of the settings table. Values are free text; callers resolve
// them into typed settings with Resolve.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

const (
	KeyBuyerRate        = "buyerRate"
	KeyRdHandlerRate    = "rdHandlerRate"
	KeyContentRate      = "contentRate"
	KeyDesignerRate     = "designerRate"
	KeyReviewerRate     = "reviewerRate"
	KeyHeadDesignerRate = "headDesignerRate"
	KeyFdTier1Rate      = "fdTier1Rate"
	KeyFdTier2Rate      = "fdTier2Rate"
	KeyFdTier3Rate      = "fdTier3Rate"
	KeyFdTier2Threshold = "fdTier2Threshold"
	KeyFdTier3Threshold = "fdTier3Threshold"
	KeyFdBonusThreshold = "fdBonusThreshold"
	KeyFdBonus          = "fdBonus"
	KeyFdMultiplier     = "fdMultiplier"
)

// Defaults lists every known key with the value used when the stored one is missing,
// zero or unparseable.
var Defaults = map[string]float64{
	KeyBuyerRate:        12,
	KeyRdHandlerRate:    4,
	KeyContentRate:      10,
	KeyDesignerRate:     10,
	KeyReviewerRate:     10,
	KeyHeadDesignerRate: 15,
	KeyFdTier1Rate:      3,
	KeyFdTier2Rate:      4,
	KeyFdTier3Rate:      5,
	KeyFdTier2Threshold: 5,
	KeyFdTier3Threshold: 10,
	KeyFdBonusThreshold: 5,
	KeyFdBonus:          15,
	KeyFdMultiplier:     1.2,
}

// PayrollSettings is the resolved, typed view of the settings table. Rates are percents
// for buyer and RD handler and flat per-day amounts for the fixed-fee roles.
type PayrollSettings struct {
	BuyerRate        float64
	RdHandlerRate    float64
	ContentRate      float64
	DesignerRate     float64
	ReviewerRate     float64
	HeadDesignerRate float64
	FdTiers          metrics.FdTiers
	FdMultiplier     float64
}

// ToMap flattens the settings back into their keys.
func (p PayrollSettings) ToMap() map[string]float64 {
	return map[string]float64{
		KeyBuyerRate:        p.BuyerRate,
		KeyRdHandlerRate:    p.RdHandlerRate,
		KeyContentRate:      p.ContentRate,
		KeyDesignerRate:     p.DesignerRate,
		KeyReviewerRate:     p.ReviewerRate,
		KeyHeadDesignerRate: p.HeadDesignerRate,
		KeyFdTier1Rate:      p.FdTiers.Tier1Rate,
		KeyFdTier2Rate:      p.FdTiers.Tier2Rate,
		KeyFdTier3Rate:      p.FdTiers.Tier3Rate,
		KeyFdTier2Threshold: float64(p.FdTiers.Tier2Threshold),
		KeyFdTier3Threshold: float64(p.FdTiers.Tier3Threshold),
		KeyFdBonusThreshold: float64(p.FdTiers.BonusThreshold),
		KeyFdBonus:          p.FdTiers.Bonus,
		KeyFdMultiplier:     p.FdMultiplier,
	}
}
