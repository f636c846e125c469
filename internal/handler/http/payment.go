package http

import (
	"net/http"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler interface {
	ListPayments(w http.ResponseWriter, r *http.Request)
	CreatePayment(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	DeletePayment(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	paymentService payment.PaymentService
}

func NewPaymentHandler(paymentService payment.PaymentService) PaymentHandler {
	return &paymentHandlerImpl{paymentService: paymentService}
}

// ListPayments handles GET /payments
func (h *paymentHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	filter := payment.PaymentFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Status:     optionalQuery(r, "status"),
	}
	start, end := period(r)
	if start != "" {
		filter.StartDate = &start
	}
	if end != "" {
		filter.EndDate = &end
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.paymentService.ListPayments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// CreatePayment handles POST /payments
func (h *paymentHandlerImpl) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req payment.CreatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.paymentService.CreatePayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment created successfully", result)
}

// GetPayment handles GET /payments/{id}
func (h *paymentHandlerImpl) GetPayment(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkPaid handles POST /payments/{id}/pay
func (h *paymentHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment marked as paid", result)
}

// DeletePayment handles DELETE /payments/{id}
func (h *paymentHandlerImpl) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.paymentService.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment deleted successfully", nil)
}
