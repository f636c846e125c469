package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/finops-backend-go/internal/service/ledger/ledgertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySettingsRepo struct {
	values  map[string]string
	lists   int
	failKey string
}

func (r *memorySettingsRepo) List(context.Context) ([]settings.Setting, error) {
	r.lists++
	var rows []settings.Setting
	for k, v := range r.values {
		rows = append(rows, settings.Setting{Key: k, Value: v, UpdatedAt: time.Now()})
	}
	return rows, nil
}

func (r *memorySettingsRepo) Upsert(_ context.Context, key, value string) error {
	if key == r.failKey {
		return errors.New("write failed")
	}
	r.values[key] = value
	return nil
}

func TestGetPayrollSettingsResolvesStoredValues(t *testing.T) {
	repo := &memorySettingsRepo{values: map[string]string{
		settings.KeyBuyerRate:    "15%",
		settings.KeyFdMultiplier: "abc",
		settings.KeyContentRate:  "0",
	}}
	svc := NewSettingsService(&ledgertest.Transactor{}, repo)

	got, err := svc.GetPayrollSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15.0, got.BuyerRate)
	assert.Equal(t, 1.2, got.FdMultiplier)
	assert.Equal(t, 10.0, got.ContentRate)
	assert.Equal(t, 1, repo.lists)
}

func TestUpdateSettings(t *testing.T) {
	repo := &memorySettingsRepo{values: map[string]string{}}
	tx := &ledgertest.Transactor{}
	svc := NewSettingsService(tx, repo)

	resp, err := svc.UpdateSettings(context.Background(), settings.UpdateSettingsRequest{
		Values: map[string]float64{settings.KeyBuyerRate: 9.5, settings.KeyFdBonus: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.Calls)
	assert.Equal(t, "9.5", repo.values[settings.KeyBuyerRate])
	assert.Equal(t, "20", repo.values[settings.KeyFdBonus])

	for _, s := range resp.Settings {
		if s.Key == settings.KeyBuyerRate {
			assert.Equal(t, 9.5, s.Value)
		}
	}
}

func TestUpdateSettingsRejectsUnknownKeys(t *testing.T) {
	repo := &memorySettingsRepo{values: map[string]string{}}
	svc := NewSettingsService(&ledgertest.Transactor{}, repo)

	_, err := svc.UpdateSettings(context.Background(), settings.UpdateSettingsRequest{
		Values: map[string]float64{"bogus": 1},
	})
	require.Error(t, err)
	assert.Empty(t, repo.values)
}
