package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidRole        = errors.New("invalid employee role")
	ErrEmployeeHasPayment = errors.New("employee has payments and cannot be deleted")
)
