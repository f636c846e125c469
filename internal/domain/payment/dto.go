package payment

import (
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Note       *string         `json:"note,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than 0",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	return errs.OrNil()
}

type PaymentFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PaymentFilter) Validate() error {
	errs := validator.Pagination(&f.Page, &f.Limit)

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, []string{string(StatusPending), string(StatusPaid)}) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, paid",
			})
		}
	}
	if _, verr := validator.OptionalDate("start_date", f.StartDate); verr != nil {
		errs = append(errs, *verr)
	}
	if _, verr := validator.OptionalDate("end_date", f.EndDate); verr != nil {
		errs = append(errs, *verr)
	}

	return errs.OrNil()
}

type PaymentResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Status       string          `json:"status"`
	Note         *string         `json:"note,omitempty"`
	PaidAt       *string         `json:"paid_at,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

func NewPaymentResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Amount:       p.Amount,
		Date:         p.Date.Format("2006-01-02"),
		Status:       string(p.Status),
		Note:         p.Note,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.PaidAt != nil {
		paidAt := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

type ListPaymentResponse struct {
	Data       []PaymentResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
