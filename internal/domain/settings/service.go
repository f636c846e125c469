package settings

import "context"

type SettingsService interface {
	// GetPayrollSettings loads and resolves the table once; callers pass the result on
	GetPayrollSettings(ctx context.Context) (PayrollSettings, error)
	ListSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
