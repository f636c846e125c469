package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is an inclusive date range.
type Period struct {
	Start time.Time
	End   time.Time
}

// Detail explains one line of a payroll calculation.
type Detail struct {
	Metric string
	Value  float64
	Rate   float64
	Amount float64
}

// EmployeePayroll is what an employee earned in a period, what was paid and what is left.
type EmployeePayroll struct {
	EmployeeID       string
	EmployeeName     string
	Role             string
	CountryID        *string
	Period           Period
	CalculatedAmount decimal.Decimal
	PaidAmount       decimal.Decimal
	UnpaidAmount     decimal.Decimal
	Details          []Detail
}

type Summary struct {
	Period          Period
	CountryID       *string
	Employees       []EmployeePayroll
	TotalCalculated decimal.Decimal
	TotalPaid       decimal.Decimal
	TotalUnpaid     decimal.Decimal
}
