package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Country   CountryHandler
	Metrics   MetricsHandler
	Employee  EmployeeHandler
	Payroll   PayrollHandler
	Settings  SettingsHandler
	Payment   PaymentHandler
	Balance   BalanceHandler
	Expense   ExpenseHandler
	Wallet    WalletHandler
	Import    ImportHandler
	Report    ReportHandler
	Dashboard DashboardHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(logger *slog.Logger, JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/countries", func(r chi.Router) {
			r.Get("/", h.Country.ListCountries)
			r.Get("/{id}", h.Country.GetCountry)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionCountryManage))
				r.Post("/", h.Country.CreateCountry)
				r.Put("/{id}", h.Country.UpdateCountry)
				r.Delete("/{id}", h.Country.DeleteCountry)
			})
		})

		r.Route("/metrics", func(r chi.Router) {
			r.Get("/", h.Metrics.ListDailyMetrics)
			r.Get("/{id}", h.Metrics.GetDailyMetrics)
			// Preview only, nothing is stored
			r.Post("/calculate", h.Metrics.Calculate)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionMetricsManage))
				r.Post("/", h.Metrics.UpsertDailyMetrics)
				r.Delete("/{id}", h.Metrics.DeleteDailyMetrics)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Get("/{id}", h.Employee.GetEmployee)
			r.Get("/{id}/payroll", h.Payroll.CalculateEmployeePayroll)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
				r.Post("/", h.Employee.CreateEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)
				r.Delete("/{id}", h.Employee.DeleteEmployee)
			})
		})

		r.Get("/payroll", h.Payroll.CalculatePayroll)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.Settings.ListSettings)
			r.With(middleware.RequirePermission(user.PermissionSettingsManage)).Put("/", h.Settings.UpdateSettings)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.Payment.ListPayments)
			r.Get("/{id}", h.Payment.GetPayment)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPaymentManage))
				r.Post("/", h.Payment.CreatePayment)
				r.Post("/{id}/pay", h.Payment.MarkPaid)
				r.Delete("/{id}", h.Payment.DeletePayment)
			})
		})

		r.Route("/balances", func(r chi.Router) {
			r.Get("/", h.Balance.ListBalances)
			r.Get("/{id}", h.Balance.GetBalance)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLedgerManage))
				r.Post("/", h.Balance.CreateBalance)
				r.Post("/{id}/reconcile", h.Balance.ReconcileBalance)
			})
		})

		r.Route("/balance-transactions", func(r chi.Router) {
			r.Get("/", h.Balance.ListTransactions)
			r.Get("/{id}", h.Balance.GetTransaction)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLedgerManage))
				r.Post("/", h.Balance.CreateTransaction)
				r.Put("/{id}", h.Balance.UpdateTransaction)
				r.Delete("/{id}", h.Balance.DeleteTransaction)
			})
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.Expense.ListExpenses)
			r.Get("/{id}", h.Expense.GetExpense)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionExpenseManage))
				r.Post("/", h.Expense.CreateExpense)
				r.Put("/{id}", h.Expense.UpdateExpense)
				r.Delete("/{id}", h.Expense.DeleteExpense)
			})
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/transactions", h.Wallet.ListTransactions)
			r.With(middleware.RequirePermission(user.PermissionWalletSync)).Post("/sync", h.Wallet.Sync)
		})

		r.Route("/imports", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionImport))
			r.Post("/xlsx", h.Import.ImportXLSX)
			r.Post("/sheets", h.Import.ImportSheet)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/metrics.xlsx", h.Report.ExportMetrics)
			r.Get("/payroll.xlsx", h.Report.ExportPayroll)
		})

		r.Get("/dashboard", h.Dashboard.GetDashboard)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
