package payroll

import "errors"

var ErrInvalidPeriod = errors.New("end date must not be before start date")
