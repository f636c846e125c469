package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BalanceHandler interface {
	ListBalances(w http.ResponseWriter, r *http.Request)
	CreateBalance(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	// ReconcileBalance compares the stored amount with the ledger; ?fix=true repairs it
	ReconcileBalance(w http.ResponseWriter, r *http.Request)

	ListTransactions(w http.ResponseWriter, r *http.Request)
	CreateTransaction(w http.ResponseWriter, r *http.Request)
	GetTransaction(w http.ResponseWriter, r *http.Request)
	UpdateTransaction(w http.ResponseWriter, r *http.Request)
	DeleteTransaction(w http.ResponseWriter, r *http.Request)
}

type balanceHandlerImpl struct {
	ledgerService balance.LedgerService
}

func NewBalanceHandler(ledgerService balance.LedgerService) BalanceHandler {
	return &balanceHandlerImpl{ledgerService: ledgerService}
}

// ListBalances handles GET /balances
func (h *balanceHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.ListBalances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateBalance handles POST /balances
func (h *balanceHandlerImpl) CreateBalance(w http.ResponseWriter, r *http.Request) {
	var req balance.CreateBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.ledgerService.CreateBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Balance created successfully", result)
}

// GetBalance handles GET /balances/{id}
func (h *balanceHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.GetBalance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ReconcileBalance handles POST /balances/{id}/reconcile
func (h *balanceHandlerImpl) ReconcileBalance(w http.ResponseWriter, r *http.Request) {
	fix, _ := strconv.ParseBool(r.URL.Query().Get("fix"))

	result, err := h.ledgerService.ReconcileBalance(r.Context(), chi.URLParam(r, "id"), fix)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTransactions handles GET /balance-transactions
func (h *balanceHandlerImpl) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := balance.TransactionFilter{
		BalanceID: optionalQuery(r, "balance_id"),
		Type:      optionalQuery(r, "type"),
	}
	start, end := period(r)
	if start != "" {
		filter.StartDate = &start
	}
	if end != "" {
		filter.EndDate = &end
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.ledgerService.ListTransactions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// CreateTransaction handles POST /balance-transactions
func (h *balanceHandlerImpl) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req balance.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.ledgerService.CreateTransaction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction created successfully", result)
}

// GetTransaction handles GET /balance-transactions/{id}
func (h *balanceHandlerImpl) GetTransaction(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateTransaction handles PUT /balance-transactions/{id}
func (h *balanceHandlerImpl) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req balance.UpdateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.ledgerService.UpdateTransaction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteTransaction handles DELETE /balance-transactions/{id}
func (h *balanceHandlerImpl) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerService.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction deleted successfully", nil)
}
