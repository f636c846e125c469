package country

import "errors"

var (
	ErrCountryNotFound   = errors.New("country not found")
	ErrCountryCodeExists = errors.New("country code already exists")
	ErrCountryInUse      = errors.New("country is referenced by metrics, employees or expenses")
)
