package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Payment is money owed or handed to an employee. Moving it to paid debits the
// employee's running balance by Amount.
type Payment struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	Date       time.Time
	Status     Status
	Note       *string
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}
