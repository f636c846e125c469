package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	CountryID        *string    `json:"country_id,omitempty"`
	PercentRate      *float64   `json:"percent_rate,omitempty"`
	FixedRate        *float64   `json:"fixed_rate,omitempty"`
	FdTier1Rate      *float64   `json:"fd_tier1_rate,omitempty"`
	FdTier2Rate      *float64   `json:"fd_tier2_rate,omitempty"`
	FdTier3Rate      *float64   `json:"fd_tier3_rate,omitempty"`
	FdBonusThreshold *int       `json:"fd_bonus_threshold,omitempty"`
	FdBonus          *float64   `json:"fd_bonus,omitempty"`
	BuyerTiers       []RateTier `json:"buyer_tiers,omitempty"`
	RdTiers          []RateTier `json:"rd_tiers,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 150 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 150 characters",
		})
	}

	if !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: " + rolesList(),
		})
	}

	if r.CountryID != nil && !validator.IsValidUUID(*r.CountryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "country_id",
			Message: "country_id must be a valid UUID",
		})
	}

	errs = append(errs, validateOverrides(r.PercentRate, r.FixedRate, r.FdTier1Rate, r.FdTier2Rate,
		r.FdTier3Rate, r.FdBonusThreshold, r.FdBonus, r.BuyerTiers, r.RdTiers)...)

	return errs.OrNil()
}

// UpdateEmployeeRequest replaces only the fields that are present.
type UpdateEmployeeRequest struct {
	ID               string      `json:"-"`
	Name             *string     `json:"name,omitempty"`
	Role             *string     `json:"role,omitempty"`
	CountryID        *string     `json:"country_id,omitempty"`
	PercentRate      *float64    `json:"percent_rate,omitempty"`
	FixedRate        *float64    `json:"fixed_rate,omitempty"`
	FdTier1Rate      *float64    `json:"fd_tier1_rate,omitempty"`
	FdTier2Rate      *float64    `json:"fd_tier2_rate,omitempty"`
	FdTier3Rate      *float64    `json:"fd_tier3_rate,omitempty"`
	FdBonusThreshold *int        `json:"fd_bonus_threshold,omitempty"`
	FdBonus          *float64    `json:"fd_bonus,omitempty"`
	BuyerTiers       *[]RateTier `json:"buyer_tiers,omitempty"`
	RdTiers          *[]RateTier `json:"rd_tiers,omitempty"`
	IsActive         *bool       `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
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

	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: " + rolesList(),
		})
	}

	if r.CountryID != nil && *r.CountryID != "" && !validator.IsValidUUID(*r.CountryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "country_id",
			Message: "country_id must be a valid UUID",
		})
	}

	var buyerTiers, rdTiers []RateTier
	if r.BuyerTiers != nil {
		buyerTiers = *r.BuyerTiers
	}
	if r.RdTiers != nil {
		rdTiers = *r.RdTiers
	}
	errs = append(errs, validateOverrides(r.PercentRate, r.FixedRate, r.FdTier1Rate, r.FdTier2Rate,
		r.FdTier3Rate, r.FdBonusThreshold, r.FdBonus, buyerTiers, rdTiers)...)

	return errs.OrNil()
}

func validateOverrides(percent, fixed, t1, t2, t3 *float64, bonusThreshold *int, bonus *float64, buyerTiers, rdTiers []RateTier) validator.ValidationErrors {
	var errs validator.ValidationErrors

	nonNegative := map[string]*float64{
		"percent_rate":  percent,
		"fixed_rate":    fixed,
		"fd_tier1_rate": t1,
		"fd_tier2_rate": t2,
		"fd_tier3_rate": t3,
		"fd_bonus":      bonus,
	}
	for field, v := range nonNegative {
		if v != nil && *v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not be negative",
			})
		}
	}
	if percent != nil && *percent > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "percent_rate",
			Message: "percent_rate must not exceed 100",
		})
	}
	if bonusThreshold != nil && *bonusThreshold < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "fd_bonus_threshold",
			Message: "fd_bonus_threshold must not be negative",
		})
	}

	for field, tiers := range map[string][]RateTier{"buyer_tiers": buyerTiers, "rd_tiers": rdTiers} {
		for _, t := range tiers {
			if t.Threshold < 0 || t.Rate < 0 || t.Rate > 100 {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " need a non-negative threshold and a rate between 0 and 100",
				})
				break
			}
		}
	}

	return errs
}

func rolesList() string {
	names := make([]string, len(AllRoles))
	for i, r := range AllRoles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

type EmployeeFilter struct {
	CountryID *string `json:"country_id,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	Search    *string `json:"search,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	errs := validator.Pagination(&f.Page, &f.Limit)

	if f.Role != nil && *f.Role != "" && !Role(*f.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: " + rolesList(),
		})
	}

	return errs.OrNil()
}

type EmployeeResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Role             string          `json:"role"`
	CountryID        *string         `json:"country_id,omitempty"`
	CountryName      *string         `json:"country_name,omitempty"`
	PercentRate      *float64        `json:"percent_rate,omitempty"`
	FixedRate        *float64        `json:"fixed_rate,omitempty"`
	FdTier1Rate      *float64        `json:"fd_tier1_rate,omitempty"`
	FdTier2Rate      *float64        `json:"fd_tier2_rate,omitempty"`
	FdTier3Rate      *float64        `json:"fd_tier3_rate,omitempty"`
	FdBonusThreshold *int            `json:"fd_bonus_threshold,omitempty"`
	FdBonus          *float64        `json:"fd_bonus,omitempty"`
	BuyerTiers       []RateTier      `json:"buyer_tiers"`
	RdTiers          []RateTier      `json:"rd_tiers"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	buyerTiers := e.BuyerTiers
	if buyerTiers == nil {
		buyerTiers = []RateTier{}
	}
	rdTiers := e.RdTiers
	if rdTiers == nil {
		rdTiers = []RateTier{}
	}
	return EmployeeResponse{
		ID:               e.ID,
		Name:             e.Name,
		Role:             string(e.Role),
		CountryID:        e.CountryID,
		CountryName:      e.CountryName,
		PercentRate:      e.PercentRate,
		FixedRate:        e.FixedRate,
		FdTier1Rate:      e.FdTier1Rate,
		FdTier2Rate:      e.FdTier2Rate,
		FdTier3Rate:      e.FdTier3Rate,
		FdBonusThreshold: e.FdBonusThreshold,
		FdBonus:          e.FdBonus,
		BuyerTiers:       buyerTiers,
		RdTiers:          rdTiers,
		CurrentBalance:   e.CurrentBalance,
		IsActive:         e.IsActive,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.Format(time.RFC3339),
	}
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
