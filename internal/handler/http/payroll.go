package http

import (
	"net/http"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// CalculatePayroll handles GET /payroll
	CalculatePayroll(w http.ResponseWriter, r *http.Request)
	// CalculateEmployeePayroll handles GET /employees/{id}/payroll
	CalculateEmployeePayroll(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) CalculatePayroll(w http.ResponseWriter, r *http.Request) {
	req := payroll.CalculatePayrollRequest{CountryID: optionalQuery(r, "country_id")}
	req.StartDate, req.EndDate = period(r)

	p, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.payrollService.CalculatePayroll(r.Context(), p, req.CountryID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewPayrollSummaryResponse(summary))
}

func (h *payrollHandlerImpl) CalculateEmployeePayroll(w http.ResponseWriter, r *http.Request) {
	req := payroll.CalculateEmployeePayrollRequest{EmployeeID: chi.URLParam(r, "id")}
	req.StartDate, req.EndDate = period(r)

	p, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.CalculateEmployeePayroll(r.Context(), req.EmployeeID, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewEmployeePayrollResponse(result))
}
