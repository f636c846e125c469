package settings

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	Values map[string]float64 `json:"values"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Values) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "values",
			Message: "values must contain at least one setting",
		})
	}

	for key, value := range r.Values {
		if _, known := Defaults[key]; !known {
			errs = append(errs, validator.ValidationError{
				Field:   key,
				Message: fmt.Sprintf("unknown setting %q", key),
			})
			continue
		}
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			errs = append(errs, validator.ValidationError{
				Field:   key,
				Message: "must be a non-negative number",
			})
		}
	}

	return errs.OrNil()
}

type SettingResponse struct {
	Key       string  `json:"key"`
	RawValue  *string `json:"raw_value,omitempty"`
	Value     float64 `json:"value"`
	Default   float64 `json:"default"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

type SettingsResponse struct {
	Settings []SettingResponse `json:"settings"`
}

// NewSettingsResponse lists every known key in name order with its raw and resolved value.
func NewSettingsResponse(rows []Setting) SettingsResponse {
	raw := make(map[string]Setting, len(rows))
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		raw[row.Key] = row
		values[row.Key] = row.Value
	}
	resolved := Resolve(values).ToMap()

	keys := make([]string, 0, len(Defaults))
	for key := range Defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	resp := SettingsResponse{Settings: make([]SettingResponse, 0, len(keys))}
	for _, key := range keys {
		item := SettingResponse{Key: key, Value: resolved[key], Default: Defaults[key]}
		if row, ok := raw[key]; ok {
			value := row.Value
			updatedAt := row.UpdatedAt.Format(time.RFC3339)
			item.RawValue = &value
			item.UpdatedAt = &updatedAt
		}
		resp.Settings = append(resp.Settings, item)
	}
	return resp
}
