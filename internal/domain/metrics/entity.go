package metrics

import "time"

// DailyMetricsInput holds the figures operators enter for one country and day.
type DailyMetricsInput struct {
	SpendTrust          float64
	SpendCrossgif       float64
	SpendFbm            float64
	RevenueLocalPriemka float64
	RevenueUsdtPriemka  float64
	RevenueLocalOwn     float64
	RevenueUsdtOwn      float64
	FdCount             int
	FdSumLocal          float64
	ChatterfyCost       float64
	AdditionalExpenses  float64

	// Manually entered payroll for roles the calculator has no formula for
	PayrollContent      float64
	PayrollDesigner     float64
	PayrollReviewer     float64
	PayrollHeadDesigner float64
}

type CalculatedMetrics struct {
	TotalSpend          float64
	AgencyFee           float64
	ExchangeRatePriemka float64
	ExchangeRateOwn     float64
	CommissionPriemka   float64
	TotalRevenueUsdt    float64
	FdSumUsdt           float64
	RdSumLocal          float64
	RdSumUsdt           float64
	PayrollRdHandler    float64
	PayrollFdHandler    float64
	PayrollBuyer        float64
	TotalPayroll        float64
	TotalExpensesUsdt   float64
	NetProfitMath       float64
	Roi                 float64
}

// DailyMetrics is one stored row per (date, country). Calculated fields are always
// recomputed from Input on write.
type DailyMetrics struct {
	ID        string
	Date      time.Time
	CountryID string
	DailyMetricsInput
	CalculatedMetrics
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	CountryCode *string
	CountryName *string
}

// Agency channels whose spend is drawn from a prepaid agency balance.
type Channel string

const (
	ChannelTrust    Channel = "TRUST"
	ChannelCrossgif Channel = "CROSSGIF"
	ChannelFbm      Channel = "FBM"
)

type ChannelSpend struct {
	Channel Channel
	Amount  float64
}

// ChannelSpends returns the spend of each agency channel in a fixed order.
func (in DailyMetricsInput) ChannelSpends() []ChannelSpend {
	return []ChannelSpend{
		{Channel: ChannelTrust, Amount: in.SpendTrust},
		{Channel: ChannelCrossgif, Amount: in.SpendCrossgif},
		{Channel: ChannelFbm, Amount: in.SpendFbm},
	}
}
