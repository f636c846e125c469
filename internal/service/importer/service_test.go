package importer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/country"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/importer"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kzID = "0190a3c4-0000-7000-8000-00000000000a"

type recordingMetrics struct {
	metrics.DailyMetricsService
	requests []metrics.UpsertDailyMetricsRequest
}

func (m *recordingMetrics) Upsert(_ context.Context, req metrics.UpsertDailyMetricsRequest) (metrics.DailyMetricsResponse, error) {
	if err := req.Validate(); err != nil {
		return metrics.DailyMetricsResponse{}, err
	}
	m.requests = append(m.requests, req)
	return metrics.DailyMetricsResponse{ID: "m"}, nil
}

type countryLookup struct {
	country.CountryRepository
	lookups int
}

func (r *countryLookup) GetByCode(_ context.Context, code string) (country.Country, error) {
	r.lookups++
	if code == "KZ" {
		return country.Country{ID: kzID, Code: "KZ"}, nil
	}
	return country.Country{}, country.ErrCountryNotFound
}

type staticRows [][]string

func (s staticRows) ReadRows(context.Context) ([][]string, error) { return s, nil }

func header() []string {
	return append([]string(nil), importer.Columns...)
}

func TestImportRows(t *testing.T) {
	m := &recordingMetrics{}
	countries := &countryLookup{}
	svc := NewImporterService(m, countries, nil)

	rows := [][]string{
		header(),
		{"2024-03-01", "kz", "100", "50.5", "", "1000", "12", "20000", "40", "2.5", "5000", "3", "1"},
		{"02.03.2024", "KZ", "abc", "1e2", "7%"},
		{"", "", ""},
		{"2024-03-03", "XX", "1"},
		{"not a date", "KZ"},
		{"2024-03-04", "KZ", "-5"},
	}

	result, err := svc.ImportRows(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 5, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "XX")
	assert.Equal(t, 6, result.Errors[1].Row)
	assert.Equal(t, 7, result.Errors[2].Row)
	assert.Equal(t, 2, countries.lookups)

	require.Len(t, m.requests, 2)
	first := m.requests[0]
	assert.Equal(t, "2024-03-01", first.Date)
	assert.Equal(t, kzID, first.CountryID)
	assert.Equal(t, 100.0, first.SpendTrust)
	assert.Equal(t, 50.5, first.SpendCrossgif)
	assert.Equal(t, 0.0, first.SpendFbm)
	assert.Equal(t, 3, first.FdCount)
	assert.Equal(t, 1.0, first.AdditionalExpenses)

	second := m.requests[1]
	assert.Equal(t, "2024-03-02", second.Date)
	assert.Equal(t, 0.0, second.SpendTrust)
	assert.Equal(t, 100.0, second.SpendCrossgif)
	assert.Equal(t, 7.0, second.SpendFbm)
}

func TestImportRowsRejectsBadSheets(t *testing.T) {
	svc := NewImporterService(&recordingMetrics{}, &countryLookup{}, nil)
	ctx := context.Background()

	_, err := svc.ImportRows(ctx, [][]string{header()})
	assert.ErrorIs(t, err, importer.ErrEmptySheet)

	bad := header()
	bad[2] = "spend"
	_, err = svc.ImportRows(ctx, [][]string{bad, {"2024-03-01", "KZ"}})
	assert.ErrorIs(t, err, importer.ErrInvalidHeader)

	_, err = svc.ImportSheet(ctx)
	assert.ErrorIs(t, err, importer.ErrSheetsNotConfigured)
}

func TestImportRowsStopsOnCancel(t *testing.T) {
	svc := NewImporterService(&recordingMetrics{}, &countryLookup{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ImportRows(ctx, [][]string{header(), {"2024-03-01", "KZ"}})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestImportSheet(t *testing.T) {
	m := &recordingMetrics{}
	svc := NewImporterService(m, &countryLookup{}, staticRows{header(), {"2024-03-01", "KZ", "10"}})

	result, err := svc.ImportSheet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, m.requests, 1)
	assert.Equal(t, 10.0, m.requests[0].SpendTrust)
}

func TestImportXLSX(t *testing.T) {
	w := xlsx.NewWriter()
	require.NoError(t, w.Sheet("Daily", importer.Columns...))
	require.NoError(t, w.Append("2024-03-01", "KZ", 120.5, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0))
	data, err := w.Bytes()
	require.NoError(t, err)

	m := &recordingMetrics{}
	svc := NewImporterService(m, &countryLookup{}, nil)

	result, err := svc.ImportXLSX(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, m.requests, 1)
	assert.Equal(t, 120.5, m.requests[0].SpendTrust)
	assert.Equal(t, 4, m.requests[0].FdCount)
}
