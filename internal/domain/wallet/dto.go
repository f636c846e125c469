package wallet

import (
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type WalletTransactionFilter struct {
	Source    *string `json:"source,omitempty"`
	Direction *string `json:"direction,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *WalletTransactionFilter) Validate() error {
	errs := validator.Pagination(&f.Page, &f.Limit)

	if f.Source != nil && *f.Source != "" && !Source(*f.Source).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: htx, bsc",
		})
	}
	if f.Direction != nil && *f.Direction != "" && !validator.IsInSlice(*f.Direction, []string{string(DirectionIn), string(DirectionOut)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: "direction must be one of: in, out",
		})
	}

	return errs.OrNil()
}

type WalletTransactionResponse struct {
	ID                   string          `json:"id"`
	Source               string          `json:"source"`
	ExternalID           string          `json:"external_id"`
	Direction            string          `json:"direction"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	OccurredAt           string          `json:"occurred_at"`
	BalanceTransactionID *string         `json:"balance_transaction_id,omitempty"`
}

func NewWalletTransactionResponse(w WalletTransaction) WalletTransactionResponse {
	return WalletTransactionResponse{
		ID:                   w.ID,
		Source:               string(w.Source),
		ExternalID:           w.ExternalID,
		Direction:            string(w.Direction),
		Amount:               w.Amount,
		Currency:             w.Currency,
		OccurredAt:           w.OccurredAt.Format(time.RFC3339),
		BalanceTransactionID: w.BalanceTransactionID,
	}
}

type ListWalletTransactionResponse struct {
	Data       []WalletTransactionResponse `json:"data"`
	TotalCount int64                       `json:"total_count"`
	Page       int                         `json:"page"`
	Limit      int                         `json:"limit"`
}

type SyncResult struct {
	Source   string `json:"source"`
	Fetched  int    `json:"fetched"`
	Recorded int    `json:"recorded"`
	Skipped  int    `json:"skipped"`
}
