package importer

import "errors"

var (
	ErrEmptySheet          = errors.New("sheet has no data rows")
	ErrInvalidHeader       = errors.New("sheet header does not match the import layout")
	ErrSheetsNotConfigured = errors.New("google sheets import is not configured")
)
