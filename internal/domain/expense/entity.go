package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAgencyTopUp moves money from the exchange balance to an agency balance.
// Every other category is a plain spend from the exchange balance.
const CategoryAgencyTopUp = "agency_topup"

type Expense struct {
	ID                string
	Date              time.Time
	CountryID         *string
	Category          string
	Amount            decimal.Decimal
	Description       *string
	TargetBalanceCode *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	CountryCode *string
}

func (e Expense) IsAgencyTopUp() bool {
	return e.Category == CategoryAgencyTopUp
}
