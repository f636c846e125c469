package payroll

import "context"

type PayrollService interface {
	// CalculateEmployeePayroll returns employee.ErrEmployeeNotFound for an unknown id
	CalculateEmployeePayroll(ctx context.Context, employeeID string, period Period) (EmployeePayroll, error)

	// CalculatePayroll covers every active employee, optionally of one country
	CalculatePayroll(ctx context.Context, period Period, countryID *string) (Summary, error)
}
