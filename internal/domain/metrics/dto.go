package metrics

import (
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
)

// MetricsValues is the raw figures block shared by preview and upsert requests.
type MetricsValues struct {
	SpendTrust          float64 `json:"spend_trust" validate:"gte=0"`
	SpendCrossgif       float64 `json:"spend_crossgif" validate:"gte=0"`
	SpendFbm            float64 `json:"spend_fbm" validate:"gte=0"`
	RevenueLocalPriemka float64 `json:"revenue_local_priemka" validate:"gte=0"`
	RevenueUsdtPriemka  float64 `json:"revenue_usdt_priemka" validate:"gte=0"`
	RevenueLocalOwn     float64 `json:"revenue_local_own" validate:"gte=0"`
	RevenueUsdtOwn      float64 `json:"revenue_usdt_own" validate:"gte=0"`
	FdCount             int     `json:"fd_count" validate:"gte=0"`
	FdSumLocal          float64 `json:"fd_sum_local" validate:"gte=0"`
	ChatterfyCost       float64 `json:"chatterfy_cost" validate:"gte=0"`
	AdditionalExpenses  float64 `json:"additional_expenses" validate:"gte=0"`
	PayrollContent      float64 `json:"payroll_content" validate:"gte=0"`
	PayrollDesigner     float64 `json:"payroll_designer" validate:"gte=0"`
	PayrollReviewer     float64 `json:"payroll_reviewer" validate:"gte=0"`
	PayrollHeadDesigner float64 `json:"payroll_head_designer" validate:"gte=0"`
}

func (v MetricsValues) ToInput() DailyMetricsInput {
	return DailyMetricsInput{
		SpendTrust:          v.SpendTrust,
		SpendCrossgif:       v.SpendCrossgif,
		SpendFbm:            v.SpendFbm,
		RevenueLocalPriemka: v.RevenueLocalPriemka,
		RevenueUsdtPriemka:  v.RevenueUsdtPriemka,
		RevenueLocalOwn:     v.RevenueLocalOwn,
		RevenueUsdtOwn:      v.RevenueUsdtOwn,
		FdCount:             v.FdCount,
		FdSumLocal:          v.FdSumLocal,
		ChatterfyCost:       v.ChatterfyCost,
		AdditionalExpenses:  v.AdditionalExpenses,
		PayrollContent:      v.PayrollContent,
		PayrollDesigner:     v.PayrollDesigner,
		PayrollReviewer:     v.PayrollReviewer,
		PayrollHeadDesigner: v.PayrollHeadDesigner,
	}
}

func valuesFromInput(in DailyMetricsInput) MetricsValues {
	return MetricsValues{
		SpendTrust:          in.SpendTrust,
		SpendCrossgif:       in.SpendCrossgif,
		SpendFbm:            in.SpendFbm,
		RevenueLocalPriemka: in.RevenueLocalPriemka,
		RevenueUsdtPriemka:  in.RevenueUsdtPriemka,
		RevenueLocalOwn:     in.RevenueLocalOwn,
		RevenueUsdtOwn:      in.RevenueUsdtOwn,
		FdCount:             in.FdCount,
		FdSumLocal:          in.FdSumLocal,
		ChatterfyCost:       in.ChatterfyCost,
		AdditionalExpenses:  in.AdditionalExpenses,
		PayrollContent:      in.PayrollContent,
		PayrollDesigner:     in.PayrollDesigner,
		PayrollReviewer:     in.PayrollReviewer,
		PayrollHeadDesigner: in.PayrollHeadDesigner,
	}
}

// CalculateRequest previews the derived figures without storing anything.
type CalculateRequest struct {
	MetricsValues
}

func (r *CalculateRequest) Validate() error {
	return validator.Struct(r)
}

type UpsertDailyMetricsRequest struct {
	Date      string `json:"date" validate:"required,date"`
	CountryID string `json:"country_id" validate:"required,uuid"`
	MetricsValues
}

func (r *UpsertDailyMetricsRequest) Validate() error {
	return validator.Struct(r)
}

type CalculatedMetricsResponse struct {
	TotalSpend          float64 `json:"total_spend"`
	AgencyFee           float64 `json:"agency_fee"`
	ExchangeRatePriemka float64 `json:"exchange_rate_priemka"`
	ExchangeRateOwn     float64 `json:"exchange_rate_own"`
	CommissionPriemka   float64 `json:"commission_priemka"`
	TotalRevenueUsdt    float64 `json:"total_revenue_usdt"`
	FdSumUsdt           float64 `json:"fd_sum_usdt"`
	RdSumLocal          float64 `json:"rd_sum_local"`
	RdSumUsdt           float64 `json:"rd_sum_usdt"`
	PayrollRdHandler    float64 `json:"payroll_rd_handler"`
	PayrollFdHandler    float64 `json:"payroll_fd_handler"`
	PayrollBuyer        float64 `json:"payroll_buyer"`
	TotalPayroll        float64 `json:"total_payroll"`
	TotalExpensesUsdt   float64 `json:"total_expenses_usdt"`
	NetProfitMath       float64 `json:"net_profit_math"`
	Roi                 float64 `json:"roi"`
}

func NewCalculatedMetricsResponse(c CalculatedMetrics) CalculatedMetricsResponse {
	return CalculatedMetricsResponse(c)
}

type DailyMetricsResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	CountryID   string  `json:"country_id"`
	CountryCode *string `json:"country_code,omitempty"`
	CountryName *string `json:"country_name,omitempty"`
	MetricsValues
	CalculatedMetricsResponse
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewDailyMetricsResponse(m DailyMetrics) DailyMetricsResponse {
	return DailyMetricsResponse{
		ID:                        m.ID,
		Date:                      m.Date.Format("2006-01-02"),
		CountryID:                 m.CountryID,
		CountryCode:               m.CountryCode,
		CountryName:               m.CountryName,
		MetricsValues:             valuesFromInput(m.DailyMetricsInput),
		CalculatedMetricsResponse: NewCalculatedMetricsResponse(m.CalculatedMetrics),
		CreatedAt:                 m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                 m.UpdatedAt.Format(time.RFC3339),
	}
}

type DailyMetricsFilter struct {
	CountryID *string `json:"country_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *DailyMetricsFilter) Validate() error {
	errs := validator.Pagination(&f.Page, &f.Limit)

	start, verr := validator.OptionalDate("start_date", f.StartDate)
	if verr != nil {
		errs = append(errs, *verr)
	}
	end, verr := validator.OptionalDate("end_date", f.EndDate)
	if verr != nil {
		errs = append(errs, *verr)
	}
	if start != nil && end != nil && end.Before(*start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	return errs.OrNil()
}

type ListDailyMetricsResponse struct {
	Data       []DailyMetricsResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}
