package expense

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Date              string          `json:"date"`
	CountryID         *string         `json:"country_id,omitempty"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	Description       *string         `json:"description,omitempty"`
	TargetBalanceCode *string         `json:"target_balance_code,omitempty"`
}

func (r *CreateExpenseRequest) Validate() error {
	return validateExpense(&r.Date, r.CountryID, &r.Category, r.Amount, r.TargetBalanceCode).OrNil()
}

type UpdateExpenseRequest struct {
	ID string `json:"-"`
	CreateExpenseRequest
}

func (r *UpdateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	errs = append(errs, validateExpense(&r.Date, r.CountryID, &r.Category, r.Amount, r.TargetBalanceCode)...)
	return errs.OrNil()
}

func validateExpense(date *string, countryID *string, category *string, amount decimal.Decimal, target *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(*date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if countryID != nil && !validator.IsValidUUID(*countryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "country_id",
			Message: "country_id must be a valid UUID",
		})
	}

	*category = strings.ToLower(strings.TrimSpace(*category))
	if *category == "" || len(*category) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is required and must not exceed 50 characters",
		})
	}

	if !amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than 0",
		})
	}

	if *category == CategoryAgencyTopUp && (target == nil || validator.IsEmpty(*target)) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_balance_code",
			Message: ErrTargetBalanceRequired.Error(),
		})
	}

	return errs
}

type ExpenseFilter struct {
	CountryID *string `json:"country_id,omitempty"`
	Category  *string `json:"category,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ExpenseFilter) Validate() error {
	errs := validator.Pagination(&f.Page, &f.Limit)
	if _, verr := validator.OptionalDate("start_date", f.StartDate); verr != nil {
		errs = append(errs, *verr)
	}
	if _, verr := validator.OptionalDate("end_date", f.EndDate); verr != nil {
		errs = append(errs, *verr)
	}
	return errs.OrNil()
}

type ExpenseResponse struct {
	ID                string          `json:"id"`
	Date              string          `json:"date"`
	CountryID         *string         `json:"country_id,omitempty"`
	CountryCode       *string         `json:"country_code,omitempty"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	Description       *string         `json:"description,omitempty"`
	TargetBalanceCode *string         `json:"target_balance_code,omitempty"`
	TransactionIDs    []string        `json:"transaction_ids,omitempty"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

func NewExpenseResponse(e Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:                e.ID,
		Date:              e.Date.Format("2006-01-02"),
		CountryID:         e.CountryID,
		CountryCode:       e.CountryCode,
		Category:          e.Category,
		Amount:            e.Amount,
		Description:       e.Description,
		TargetBalanceCode: e.TargetBalanceCode,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.Format(time.RFC3339),
	}
}

type ListExpenseResponse struct {
	Data       []ExpenseResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
