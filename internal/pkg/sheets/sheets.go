// Package sheets reads cell ranges from Google Sheets with a service account.
package sheets

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/oauth"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const ReadonlyScope = gsheets.SpreadsheetsReadonlyScope

type Reader struct {
	auth          oauth.GoogleService
	spreadsheetID string
	readRange     string
	endpoint      string
}

func NewReader(auth oauth.GoogleService, spreadsheetID, readRange string) *Reader {
	return &Reader{auth: auth, spreadsheetID: spreadsheetID, readRange: readRange}
}

// ReadRows fetches the configured range as formatted strings, header row included.
func (r *Reader) ReadRows(ctx context.Context) ([][]string, error) {
	opts := []option.ClientOption{option.WithHTTPClient(r.auth.Client(ctx))}
	if r.endpoint != "" {
		opts = append(opts, option.WithEndpoint(r.endpoint))
	}

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	resp, err := svc.Spreadsheets.Values.Get(r.spreadsheetID, r.readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s of spreadsheet %s: %w", r.readRange, r.spreadsheetID, err)
	}
	return toStrings(resp.Values), nil
}

func toStrings(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, cells)
	}
	return rows
}
