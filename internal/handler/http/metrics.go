package http

import (
	"net/http"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/metrics"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MetricsHandler interface {
	ListDailyMetrics(w http.ResponseWriter, r *http.Request)
	UpsertDailyMetrics(w http.ResponseWriter, r *http.Request)
	GetDailyMetrics(w http.ResponseWriter, r *http.Request)
	DeleteDailyMetrics(w http.ResponseWriter, r *http.Request)
	// Calculate previews derived figures without writing
	Calculate(w http.ResponseWriter, r *http.Request)
}

type metricsHandlerImpl struct {
	metricsService metrics.DailyMetricsService
}

func NewMetricsHandler(metricsService metrics.DailyMetricsService) MetricsHandler {
	return &metricsHandlerImpl{metricsService: metricsService}
}

// ListDailyMetrics handles GET /metrics
func (h *metricsHandlerImpl) ListDailyMetrics(w http.ResponseWriter, r *http.Request) {
	filter := metrics.DailyMetricsFilter{
		CountryID: optionalQuery(r, "country_id"),
	}
	start, end := period(r)
	if start != "" {
		filter.StartDate = &start
	}
	if end != "" {
		filter.EndDate = &end
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.metricsService.ListDailyMetrics(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// UpsertDailyMetrics handles POST /metrics
func (h *metricsHandlerImpl) UpsertDailyMetrics(w http.ResponseWriter, r *http.Request) {
	var req metrics.UpsertDailyMetricsRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.metricsService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDailyMetrics handles GET /metrics/{id}
func (h *metricsHandlerImpl) GetDailyMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := h.metricsService.GetDailyMetrics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteDailyMetrics handles DELETE /metrics/{id}
func (h *metricsHandlerImpl) DeleteDailyMetrics(w http.ResponseWriter, r *http.Request) {
	if err := h.metricsService.DeleteDailyMetrics(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily metrics deleted successfully", nil)
}

// Calculate handles POST /metrics/calculate
func (h *metricsHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req metrics.CalculateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.metricsService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
