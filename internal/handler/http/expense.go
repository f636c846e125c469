package http

import (
	"net/http"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExpenseHandler interface {
	ListExpenses(w http.ResponseWriter, r *http.Request)
	CreateExpense(w http.ResponseWriter, r *http.Request)
	GetExpense(w http.ResponseWriter, r *http.Request)
	UpdateExpense(w http.ResponseWriter, r *http.Request)
	DeleteExpense(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &expenseHandlerImpl{expenseService: expenseService}
}

// ListExpenses handles GET /expenses
func (h *expenseHandlerImpl) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := expense.ExpenseFilter{
		CountryID: optionalQuery(r, "country_id"),
		Category:  optionalQuery(r, "category"),
	}
	start, end := period(r)
	if start != "" {
		filter.StartDate = &start
	}
	if end != "" {
		filter.EndDate = &end
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.expenseService.ListExpenses(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// CreateExpense handles POST /expenses
func (h *expenseHandlerImpl) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expense.CreateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.expenseService.CreateExpense(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense created successfully", result)
}

// GetExpense handles GET /expenses/{id}
func (h *expenseHandlerImpl) GetExpense(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateExpense handles PUT /expenses/{id}
func (h *expenseHandlerImpl) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expense.UpdateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.expenseService.UpdateExpense(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteExpense handles DELETE /expenses/{id}
func (h *expenseHandlerImpl) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseService.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense deleted successfully", nil)
}
