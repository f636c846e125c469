package expense

import "errors"

var (
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrTargetBalanceRequired = errors.New("agency_topup requires target_balance_code")
)
