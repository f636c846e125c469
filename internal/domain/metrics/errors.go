package metrics

import "errors"

var (
	ErrDailyMetricsNotFound = errors.New("daily metrics not found")
	ErrCountryNotFound      = errors.New("country not found")
)
