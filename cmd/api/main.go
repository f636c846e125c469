package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/config"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/importer"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/wallet"
	appHTTP "github.com/cmlabs-hris/finops-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/bscscan"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/htx"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/sheets"
	"github.com/cmlabs-hris/finops-backend-go/internal/repository/postgresql"
	countryService "github.com/cmlabs-hris/finops-backend-go/internal/service/country"
	dashboardService "github.com/cmlabs-hris/finops-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/finops-backend-go/internal/service/employee"
	expenseService "github.com/cmlabs-hris/finops-backend-go/internal/service/expense"
	importerService "github.com/cmlabs-hris/finops-backend-go/internal/service/importer"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger"
	metricsService "github.com/cmlabs-hris/finops-backend-go/internal/service/metrics"
	paymentService "github.com/cmlabs-hris/finops-backend-go/internal/service/payment"
	payrollService "github.com/cmlabs-hris/finops-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/finops-backend-go/internal/service/report"
	settingsService "github.com/cmlabs-hris/finops-backend-go/internal/service/settings"
	walletService "github.com/cmlabs-hris/finops-backend-go/internal/service/wallet"
	"github.com/go-chi/httplog/v3"
)

func main() {
	issueToken := flag.String("issue-token", "", "print an access token for the given role (admin|viewer) and exit")
	subject := flag.String("subject", "operator", "user_id claim of an issued token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "finops-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if *issueToken != "" {
		token, expiresAt, err := JWTService.GenerateAccessToken(*subject, user.Role(*issueToken))
		if err != nil {
			log.Fatal("Failed to issue token: ", err)
		}
		fmt.Printf("%s\nexpires_at=%s\n", token, time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	locker := newLocker(cfg)

	countryRepo := postgresql.NewCountryRepository(db)
	metricsRepo := postgresql.NewDailyMetricsRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	walletRepo := postgresql.NewWalletRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	transactor := postgresql.NewTransactor(db)

	ledgerSvc := ledger.NewLedgerService(transactor, locker, balanceRepo)
	countrySvc := countryService.NewCountryService(countryRepo)
	settingsSvc := settingsService.NewSettingsService(transactor, settingsRepo)
	metricsSvc := metricsService.NewDailyMetricsService(ledgerSvc, metricsRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, paymentRepo)
	paymentSvc := paymentService.NewPaymentService(transactor, paymentRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(settingsSvc, employeeRepo, metricsRepo, paymentRepo)
	expenseSvc := expenseService.NewExpenseService(ledgerSvc, balanceRepo, expenseRepo, cfg.Ledger.ExchangeBalanceCode)
	walletSvc := walletService.NewWalletService(ledgerSvc, walletRepo, cfg.Ledger.ExchangeBalanceCode, newFetchers(cfg)...)
	importerSvc := importerService.NewImporterService(metricsSvc, countryRepo, newSheetReader(cfg))
	reportSvc := reportService.NewReportService(metricsRepo, payrollSvc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, balanceRepo)

	router := appHTTP.NewRouter(logger, JWTService, appHTTP.Handlers{
		Country:   appHTTP.NewCountryHandler(countrySvc),
		Metrics:   appHTTP.NewMetricsHandler(metricsSvc),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Payroll:   appHTTP.NewPayrollHandler(payrollSvc),
		Settings:  appHTTP.NewSettingsHandler(settingsSvc),
		Payment:   appHTTP.NewPaymentHandler(paymentSvc),
		Balance:   appHTTP.NewBalanceHandler(ledgerSvc),
		Expense:   appHTTP.NewExpenseHandler(expenseSvc),
		Wallet:    appHTTP.NewWalletHandler(walletSvc),
		Import:    appHTTP.NewImportHandler(importerSvc),
		Report:    appHTTP.NewReportHandler(reportSvc),
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
	}, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.AllowedOrigins,
		LogLevel:       cfg.SlogLevel(),
	})

	scheduler := cron.NewScheduler(logger)
	if cron.RegisterWalletSync(scheduler, walletSvc, cfg.Cron.WalletSyncInterval) {
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}

// newLocker falls back to the row lock alone when Redis is not configured or unreachable.
func newLocker(cfg *config.Config) lock.Locker {
	if cfg.Redis.Address == "" {
		slog.Info("Redis not configured, ledger relies on row locks only")
		return lock.NewNoopLocker()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rdb, err := lock.NewRedisClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Redis unreachable, ledger relies on row locks only", "error", err)
		return lock.NewNoopLocker()
	}
	return lock.NewRedisLocker(rdb, cfg.Redis.LockTTL)
}

func newFetchers(cfg *config.Config) []wallet.Fetcher {
	var fetchers []wallet.Fetcher

	if cfg.HTXEnabled() {
		client, err := htx.NewClient(cfg.HTX.BaseURL, cfg.HTX.AccessKey, cfg.HTX.SecretKey)
		if err != nil {
			log.Fatal("Invalid HTX configuration: ", err)
		}
		fetchers = append(fetchers, walletService.NewHTXFetcher(client, cfg.HTX.Currency))
	}

	if cfg.BSCEnabled() {
		client := bscscan.NewClient(cfg.BSC.BaseURL, cfg.BSC.APIKey, cfg.BSC.RequestsPerSecond)
		fetchers = append(fetchers, walletService.NewBSCFetcher(client, cfg.BSC.TokenContract, cfg.BSC.WalletAddress, cfg.BSC.TokenDecimals))
	}

	return fetchers
}

// newSheetReader returns nil when Google Sheets import is not configured.
func newSheetReader(cfg *config.Config) importer.RowSource {
	if cfg.Sheets.CredentialsFile == "" || cfg.Sheets.SpreadsheetID == "" {
		return nil
	}

	auth, err := oauth.NewGoogleServiceFromFile(cfg.Sheets.CredentialsFile, sheets.ReadonlyScope)
	if err != nil {
		log.Fatal("Failed to load Google credentials: ", err)
	}
	return sheets.NewReader(auth, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range)
}
