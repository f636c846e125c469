package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/country"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/importer"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/wallet"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, country.ErrCountryNotFound),
		errors.Is(err, metrics.ErrCountryNotFound):
		NotFound(w, "Country not found")
	case errors.Is(err, metrics.ErrDailyMetricsNotFound):
		NotFound(w, "Daily metrics not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payment.ErrPaymentNotFound):
		NotFound(w, "Payment not found")
	case errors.Is(err, balance.ErrBalanceNotFound):
		NotFound(w, "Balance not found")
	case errors.Is(err, balance.ErrTransactionNotFound):
		NotFound(w, "Balance transaction not found")
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")

	// Conflicts
	case errors.Is(err, country.ErrCountryCodeExists):
		Conflict(w, "Country code already exists")
	case errors.Is(err, country.ErrCountryInUse):
		Conflict(w, err.Error())
	case errors.Is(err, balance.ErrBalanceCodeExists):
		Conflict(w, "Balance code already exists")
	case errors.Is(err, employee.ErrEmployeeHasPayment):
		Conflict(w, err.Error())
	case errors.Is(err, payment.ErrPaymentAlreadyPaid):
		Conflict(w, "Payment is already paid")
	case errors.Is(err, lock.ErrNotObtained):
		Conflict(w, "Ledger is busy, retry shortly")

	// Business rules
	case errors.Is(err, balance.ErrInvalidAmount),
		errors.Is(err, balance.ErrInvalidTransactionType),
		errors.Is(err, balance.ErrLinkedTransaction),
		errors.Is(err, balance.ErrTargetBalanceNotAgency),
		errors.Is(err, expense.ErrTargetBalanceRequired),
		errors.Is(err, employee.ErrInvalidRole),
		errors.Is(err, wallet.ErrUnknownSource),
		errors.Is(err, wallet.ErrSourceNotConfigured),
		errors.Is(err, importer.ErrEmptySheet),
		errors.Is(err, importer.ErrInvalidHeader),
		errors.Is(err, importer.ErrSheetsNotConfigured):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
