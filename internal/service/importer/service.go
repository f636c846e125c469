package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/country"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/importer"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/numeric"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/xlsx"
)

// Date layouts accepted in the date column, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006/01/02",
	"01-02-06",
}

type ImporterServiceImpl struct {
	metricsService metrics.DailyMetricsService
	countryRepo    country.CountryRepository
	sheet          importer.RowSource
}

// NewImporterService builds the importer. sheet may be nil when Google Sheets is not
// configured.
func NewImporterService(
	metricsService metrics.DailyMetricsService,
	countryRepo country.CountryRepository,
	sheet importer.RowSource,
) importer.ImporterService {
	return &ImporterServiceImpl{
		metricsService: metricsService,
		countryRepo:    countryRepo,
		sheet:          sheet,
	}
}

func (s *ImporterServiceImpl) ImportXLSX(ctx context.Context, r io.Reader) (importer.ImportResult, error) {
	rows, err := xlsx.ReadRows(r)
	if err != nil {
		return importer.ImportResult{}, err
	}
	return s.ImportRows(ctx, rows)
}

func (s *ImporterServiceImpl) ImportSheet(ctx context.Context) (importer.ImportResult, error) {
	if s.sheet == nil {
		return importer.ImportResult{}, importer.ErrSheetsNotConfigured
	}
	rows, err := s.sheet.ReadRows(ctx)
	if err != nil {
		return importer.ImportResult{}, err
	}
	return s.ImportRows(ctx, rows)
}

// ImportRows upserts each data row in sheet order. A failing row is recorded and the
// import moves on; only a cancelled context stops it early.
func (s *ImporterServiceImpl) ImportRows(ctx context.Context, rows [][]string) (importer.ImportResult, error) {
	if len(rows) < 2 {
		return importer.ImportResult{}, importer.ErrEmptySheet
	}
	if err := checkHeader(rows[0]); err != nil {
		return importer.ImportResult{}, err
	}

	result := importer.ImportResult{Errors: []importer.RowError{}}
	countries := make(map[string]string)

	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if blank(row) {
			continue
		}

		rowNum := i + 2
		req, err := s.parseRow(ctx, row, countries)
		if err == nil {
			_, err = s.metricsService.Upsert(ctx, req)
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, importer.RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.Imported++
	}

	slog.Info("daily metrics imported", "imported", result.Imported, "failed", result.Failed)
	return result, nil
}

func (s *ImporterServiceImpl) parseRow(ctx context.Context, row []string, countries map[string]string) (metrics.UpsertDailyMetricsRequest, error) {
	cells := make([]string, len(importer.Columns))
	copy(cells, row)
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	date, err := parseDate(cells[0])
	if err != nil {
		return metrics.UpsertDailyMetricsRequest{}, err
	}

	countryID, err := s.countryID(ctx, strings.ToUpper(cells[1]), countries)
	if err != nil {
		return metrics.UpsertDailyMetricsRequest{}, err
	}

	num := numeric.FloatOrZero
	return metrics.UpsertDailyMetricsRequest{
		Date:      date.Format("2006-01-02"),
		CountryID: countryID,
		MetricsValues: metrics.MetricsValues{
			SpendTrust:          num(cells[2]),
			SpendCrossgif:       num(cells[3]),
			SpendFbm:            num(cells[4]),
			RevenueLocalPriemka: num(cells[5]),
			RevenueUsdtPriemka:  num(cells[6]),
			RevenueLocalOwn:     num(cells[7]),
			RevenueUsdtOwn:      num(cells[8]),
			FdCount:             numeric.RoundInt(num(cells[9])),
			FdSumLocal:          num(cells[10]),
			ChatterfyCost:       num(cells[11]),
			AdditionalExpenses:  num(cells[12]),
		},
	}, nil
}

// countryID resolves code once per import.
func (s *ImporterServiceImpl) countryID(ctx context.Context, code string, cache map[string]string) (string, error) {
	if code == "" {
		return "", errors.New("country_code is required")
	}
	if id, ok := cache[code]; ok {
		return id, nil
	}

	c, err := s.countryRepo.GetByCode(ctx, code)
	if errors.Is(err, country.ErrCountryNotFound) {
		return "", fmt.Errorf("unknown country_code %q", code)
	}
	if err != nil {
		return "", err
	}
	cache[code] = c.ID
	return c.ID, nil
}

func checkHeader(header []string) error {
	if len(header) < len(importer.Columns) {
		return importer.ErrInvalidHeader
	}
	for i, want := range importer.Columns {
		if strings.ToLower(strings.TrimSpace(header[i])) != want {
			return fmt.Errorf("%w: column %d is %q, want %q", importer.ErrInvalidHeader, i+1, header[i], want)
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
