package balance

import "errors"

var (
	ErrBalanceNotFound        = errors.New("balance not found")
	ErrBalanceCodeExists      = errors.New("balance code already exists")
	ErrTransactionNotFound    = errors.New("balance transaction not found")
	ErrInvalidAmount          = errors.New("amount must be greater than 0")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrLinkedTransaction      = errors.New("transaction is managed by its expense, metrics or wallet record")
	ErrTargetBalanceNotAgency = errors.New("target balance must be an agency balance")
)
