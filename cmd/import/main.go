// Command import loads daily metrics from an XLSX workbook or the configured Google Sheet.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/finops-backend-go/internal/config"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/importer"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/sheets"
	"github.com/cmlabs-hris/finops-backend-go/internal/repository/postgresql"
	importerService "github.com/cmlabs-hris/finops-backend-go/internal/service/importer"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger"
	metricsService "github.com/cmlabs-hris/finops-backend-go/internal/service/metrics"
)

func main() {
	file := flag.String("file", "", "path of an .xlsx workbook to import")
	fromSheet := flag.Bool("sheets", false, "import the configured Google Sheet range")
	flag.Parse()

	if (*file == "") == !*fromSheet {
		fmt.Fprintln(os.Stderr, "usage: import -file metrics.xlsx | import -sheets")
		os.Exit(2)
	}

	if err := run(*file, *fromSheet); err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, fromSheet bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	locker := lock.Locker(lock.NewNoopLocker())
	if cfg.Redis.Address != "" {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.Redis.LockTTL)
	}

	ledgerSvc := ledger.NewLedgerService(postgresql.NewTransactor(db), locker, postgresql.NewBalanceRepository(db))
	metricsSvc := metricsService.NewDailyMetricsService(ledgerSvc, postgresql.NewDailyMetricsRepository(db))

	var sheet importer.RowSource
	if fromSheet {
		auth, err := oauth.NewGoogleServiceFromFile(cfg.Sheets.CredentialsFile, sheets.ReadonlyScope)
		if err != nil {
			return fmt.Errorf("failed to load google credentials: %w", err)
		}
		sheet = sheets.NewReader(auth, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range)
	}
	svc := importerService.NewImporterService(metricsSvc, postgresql.NewCountryRepository(db), sheet)

	var result importer.ImportResult
	if fromSheet {
		result, err = svc.ImportSheet(ctx)
	} else {
		f, openErr := os.Open(path)
		if openErr != nil {
			return openErr
		}
		defer f.Close()
		result, err = svc.ImportXLSX(ctx, f)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
