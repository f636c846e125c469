package importer

import (
	"context"
	"io"
)

// RowSource yields the cells of a sheet, header row included.
type RowSource interface {
	ReadRows(ctx context.Context) ([][]string, error)
}

type ImporterService interface {
	// ImportRows upserts each data row as daily metrics and collects per-row failures
	ImportRows(ctx context.Context, rows [][]string) (ImportResult, error)

	// ImportXLSX reads the first worksheet of an uploaded workbook
	ImportXLSX(ctx context.Context, r io.Reader) (ImportResult, error)

	// ImportSheet reads the configured Google Sheet range
	ImportSheet(ctx context.Context) (ImportResult, error)
}
