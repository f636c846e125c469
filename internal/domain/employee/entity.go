package employee

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleBuyer        Role = "buyer"
	RoleRdHandler    Role = "rd_handler"
	RoleFdHandler    Role = "fd_handler"
	RoleContent      Role = "content"
	RoleDesigner     Role = "designer"
	RoleHeadDesigner Role = "head_designer"
	RoleReviewer     Role = "reviewer"
	RoleOther        Role = "other"
)

// AllRoles is the closed set of roles the payroll engine knows how to pay.
var AllRoles = []Role{
	RoleBuyer,
	RoleRdHandler,
	RoleFdHandler,
	RoleContent,
	RoleDesigner,
	RoleHeadDesigner,
	RoleReviewer,
	RoleOther,
}

func (r Role) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// RateTier switches the percent rate once the period sum reaches Threshold.
type RateTier struct {
	Threshold float64 `json:"threshold"`
	Rate      float64 `json:"rate"`
}

// PickTierRate returns the rate of the highest tier whose threshold is <= amount.
// ok is false when no tier applies.
func PickTierRate(tiers []RateTier, amount float64) (rate float64, ok bool) {
	sorted := append([]RateTier(nil), tiers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })

	for _, t := range sorted {
		if amount >= t.Threshold {
			rate, ok = t.Rate, true
		}
	}
	return rate, ok
}

type Employee struct {
	ID        string
	Name      string
	Role      Role
	CountryID *string

	// Per-employee overrides. Nil means the settings value applies.
	PercentRate      *float64
	FixedRate        *float64
	FdTier1Rate      *float64
	FdTier2Rate      *float64
	FdTier3Rate      *float64
	FdBonusThreshold *int
	FdBonus          *float64
	BuyerTiers       []RateTier
	RdTiers          []RateTier

	CurrentBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	CountryName *string
}
