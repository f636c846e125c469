package settings

import (
	"context"
	"sort"
	"strconv"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
)

type SettingsServiceImpl struct {
	tx           database.Transactor
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(tx database.Transactor, settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{
		tx:           tx,
		settingsRepo: settingsRepo,
	}
}

func (s *SettingsServiceImpl) GetPayrollSettings(ctx context.Context) (settings.PayrollSettings, error) {
	rows, err := s.settingsRepo.List(ctx)
	if err != nil {
		return settings.PayrollSettings{}, err
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return settings.Resolve(values), nil
}

func (s *SettingsServiceImpl) ListSettings(ctx context.Context) (settings.SettingsResponse, error) {
	rows, err := s.settingsRepo.List(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.NewSettingsResponse(rows), nil
}

// UpdateSettings writes every value of req in one transaction. Keys not in req keep
// their stored value.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	keys := make([]string, 0, len(req.Values))
	for key := range req.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, key := range keys {
			value := strconv.FormatFloat(req.Values[key], 'f', -1, 64)
			if err := s.settingsRepo.Upsert(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	return s.ListSettings(ctx)
}
