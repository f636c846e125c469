package balance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateBalanceRequest struct {
	Type          string          `json:"type"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	InitialAmount decimal.Decimal `json:"initial_amount"`
}

func (r *CreateBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	if r.Currency == "" {
		r.Currency = "USDT"
	}

	if !Type(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: exchange, agency",
		})
	}
	if validator.IsEmpty(r.Code) || len(r.Code) > 32 {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required and must not exceed 32 characters",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.InitialAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "initial_amount",
			Message: "initial_amount must not be negative",
		})
	}

	return errs.OrNil()
}

type BalanceResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Currency      string          `json:"currency"`
	UpdatedAt     string          `json:"updated_at"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:            b.ID,
		Type:          string(b.Type),
		Code:          b.Code,
		Name:          b.Name,
		CurrentAmount: b.CurrentAmount,
		Currency:      b.Currency,
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateTransactionRequest struct {
	BalanceID   string          `json:"balance_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description *string         `json:"description,omitempty"`
}

func (r *CreateTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.BalanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "balance_id",
			Message: "balance_id must be a valid UUID",
		})
	}
	if !TransactionType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: top_up, spend, expense, transfer",
		})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: ErrInvalidAmount.Error(),
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	return errs.OrNil()
}

// UpdateTransactionRequest replaces the present fields of a manual transaction.
type UpdateTransactionRequest struct {
	ID          string           `json:"-"`
	BalanceID   *string          `json:"balance_id,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (r *UpdateTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.BalanceID != nil && !validator.IsValidUUID(*r.BalanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "balance_id",
			Message: "balance_id must be a valid UUID",
		})
	}
	if r.Type != nil && !TransactionType(*r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: top_up, spend, expense, transfer",
		})
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: ErrInvalidAmount.Error(),
		})
	}
	if _, verr := validator.OptionalDate("date", r.Date); verr != nil {
		errs = append(errs, *verr)
	}

	return errs.OrNil()
}

type TransactionFilter struct {
	BalanceID *string `json:"balance_id,omitempty"`
	Type      *string `json:"type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TransactionFilter) Validate() error {
	errs := validator.Pagination(&f.Page, &f.Limit)

	if f.Type != nil && *f.Type != "" && !TransactionType(*f.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: top_up, spend, expense, transfer",
		})
	}
	if _, verr := validator.OptionalDate("start_date", f.StartDate); verr != nil {
		errs = append(errs, *verr)
	}
	if _, verr := validator.OptionalDate("end_date", f.EndDate); verr != nil {
		errs = append(errs, *verr)
	}

	return errs.OrNil()
}

type TransactionResponse struct {
	ID                  string          `json:"id"`
	BalanceID           string          `json:"balance_id"`
	BalanceCode         *string         `json:"balance_code,omitempty"`
	Type                string          `json:"type"`
	Amount              decimal.Decimal `json:"amount"`
	SignedAmount        decimal.Decimal `json:"signed_amount"`
	Date                string          `json:"date"`
	Description         *string         `json:"description,omitempty"`
	ExpenseID           *string         `json:"expense_id,omitempty"`
	DailyMetricsID      *string         `json:"daily_metrics_id,omitempty"`
	WalletTransactionID *string         `json:"wallet_transaction_id,omitempty"`
	CreatedAt           string          `json:"created_at"`
}

func NewTransactionResponse(t Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                  t.ID,
		BalanceID:           t.BalanceID,
		BalanceCode:         t.BalanceCode,
		Type:                string(t.Type),
		Amount:              t.Amount,
		SignedAmount:        t.Effect(),
		Date:                t.Date.Format("2006-01-02"),
		Description:         t.Description,
		ExpenseID:           t.ExpenseID,
		DailyMetricsID:      t.DailyMetricsID,
		WalletTransactionID: t.WalletTransactionID,
		CreatedAt:           t.CreatedAt.Format(time.RFC3339),
	}
}

type ListTransactionResponse struct {
	Data       []TransactionResponse `json:"data"`
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
}

type ReconcileResponse struct {
	BalanceID     string          `json:"balance_id"`
	Code          string          `json:"code"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	LedgerAmount  decimal.Decimal `json:"ledger_amount"`
	Drift         decimal.Decimal `json:"drift"`
	Fixed         bool            `json:"fixed"`
}
