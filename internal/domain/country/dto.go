package country

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
)

// CountryResponse represents the response structure for a country.
type CountryResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewCountryResponse(c Country) CountryResponse {
	return CountryResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		Currency:  c.Currency,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateCountryRequest represents the request structure for creating a country.
type CreateCountryRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func (r *CreateCountryRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))

	// Code
	if !validator.IsValidCountryCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 2-3 letters",
		})
	}

	// Name
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	// Currency
	if len(r.Currency) != 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "currency",
			Message: "currency must be a 3-letter code",
		})
	}

	return errs.OrNil()
}

// UpdateCountryRequest represents the request structure for updating a country.
type UpdateCountryRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Currency *string `json:"currency,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateCountryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Currency != nil {
		upper := strings.ToUpper(strings.TrimSpace(*r.Currency))
		r.Currency = &upper
		if len(upper) != 3 {
			errs = append(errs, validator.ValidationError{
				Field:   "currency",
				Message: "currency must be a 3-letter code",
			})
		}
	}

	return errs.OrNil()
}
