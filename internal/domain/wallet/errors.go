package wallet

import "errors"

var (
	ErrUnknownSource       = errors.New("unknown wallet source")
	ErrSourceNotConfigured = errors.New("wallet source is not configured")
)
