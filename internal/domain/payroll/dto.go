package payroll

import (
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateEmployeePayrollRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *CalculateEmployeePayrollRequest) Validate() (Period, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	period, periodErrs := parsePeriod(r.StartDate, r.EndDate)
	errs = append(errs, periodErrs...)

	return period, errs.OrNil()
}

type CalculatePayrollRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	CountryID *string `json:"country_id,omitempty"`
}

func (r *CalculatePayrollRequest) Validate() (Period, error) {
	period, errs := parsePeriod(r.StartDate, r.EndDate)

	if r.CountryID != nil && *r.CountryID != "" && !validator.IsValidUUID(*r.CountryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "country_id",
			Message: "country_id must be a valid UUID",
		})
	}

	return period, errs.OrNil()
}

func parsePeriod(startStr, endStr string) (Period, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(startStr)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(endStr)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidPeriod.Error(),
		})
	}

	return Period{Start: start, End: end}, errs
}

type DetailResponse struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

type EmployeePayrollResponse struct {
	EmployeeID       string           `json:"employee_id"`
	EmployeeName     string           `json:"employee_name"`
	Role             string           `json:"role"`
	CountryID        *string          `json:"country_id,omitempty"`
	StartDate        string           `json:"start_date"`
	EndDate          string           `json:"end_date"`
	CalculatedAmount decimal.Decimal  `json:"calculated_amount"`
	PaidAmount       decimal.Decimal  `json:"paid_amount"`
	UnpaidAmount     decimal.Decimal  `json:"unpaid_amount"`
	Details          []DetailResponse `json:"details"`
}

func NewEmployeePayrollResponse(p EmployeePayroll) EmployeePayrollResponse {
	details := make([]DetailResponse, 0, len(p.Details))
	for _, d := range p.Details {
		details = append(details, DetailResponse(d))
	}
	return EmployeePayrollResponse{
		EmployeeID:       p.EmployeeID,
		EmployeeName:     p.EmployeeName,
		Role:             p.Role,
		CountryID:        p.CountryID,
		StartDate:        p.Period.Start.Format("2006-01-02"),
		EndDate:          p.Period.End.Format("2006-01-02"),
		CalculatedAmount: p.CalculatedAmount,
		PaidAmount:       p.PaidAmount,
		UnpaidAmount:     p.UnpaidAmount,
		Details:          details,
	}
}

type PayrollSummaryResponse struct {
	StartDate       string                    `json:"start_date"`
	EndDate         string                    `json:"end_date"`
	CountryID       *string                   `json:"country_id,omitempty"`
	TotalEmployees  int                       `json:"total_employees"`
	TotalCalculated decimal.Decimal           `json:"total_calculated"`
	TotalPaid       decimal.Decimal           `json:"total_paid"`
	TotalUnpaid     decimal.Decimal           `json:"total_unpaid"`
	Employees       []EmployeePayrollResponse `json:"employees"`
}

func NewPayrollSummaryResponse(s Summary) PayrollSummaryResponse {
	employees := make([]EmployeePayrollResponse, 0, len(s.Employees))
	for _, e := range s.Employees {
		employees = append(employees, NewEmployeePayrollResponse(e))
	}
	return PayrollSummaryResponse{
		StartDate:       s.Period.Start.Format("2006-01-02"),
		EndDate:         s.Period.End.Format("2006-01-02"),
		CountryID:       s.CountryID,
		TotalEmployees:  len(s.Employees),
		TotalCalculated: s.TotalCalculated,
		TotalPaid:       s.TotalPaid,
		TotalUnpaid:     s.TotalUnpaid,
		Employees:       employees,
	}
}
