package http

import (
	"net/http"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/country"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CountryHandler interface {
	ListCountries(w http.ResponseWriter, r *http.Request)
	CreateCountry(w http.ResponseWriter, r *http.Request)
	GetCountry(w http.ResponseWriter, r *http.Request)
	UpdateCountry(w http.ResponseWriter, r *http.Request)
	DeleteCountry(w http.ResponseWriter, r *http.Request)
}

type countryHandlerImpl struct {
	countryService country.CountryService
}

func NewCountryHandler(countryService country.CountryService) CountryHandler {
	return &countryHandlerImpl{countryService: countryService}
}

// ListCountries handles GET /countries?active=true
func (h *countryHandlerImpl) ListCountries(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	result, err := h.countryService.ListCountries(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateCountry handles POST /countries
func (h *countryHandlerImpl) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var req country.CreateCountryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.countryService.CreateCountry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Country created successfully", result)
}

// GetCountry handles GET /countries/{id}
func (h *countryHandlerImpl) GetCountry(w http.ResponseWriter, r *http.Request) {
	result, err := h.countryService.GetCountry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateCountry handles PUT /countries/{id}
func (h *countryHandlerImpl) UpdateCountry(w http.ResponseWriter, r *http.Request) {
	var req country.UpdateCountryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.countryService.UpdateCountry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteCountry handles DELETE /countries/{id}
func (h *countryHandlerImpl) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	if err := h.countryService.DeleteCountry(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Country deleted successfully", nil)
}
