package report

import (
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/validator"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportRequest selects the period and optional country of an export.
type ReportRequest struct {
	StartDate string  `json:"start_date" validate:"required,date"`
	EndDate   string  `json:"end_date" validate:"required,date"`
	CountryID *string `json:"country_id,omitempty" validate:"omitempty,uuid"`
}

func (r *ReportRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if _, _, ok := validator.IsValidDateRange(r.StartDate, r.EndDate); !ok {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		}}
	}
	return nil
}

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
