package country

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/country"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCountryRepo struct {
	rows map[string]country.Country
}

func (r *memoryCountryRepo) Create(_ context.Context, c country.Country) (country.Country, error) {
	for _, existing := range r.rows {
		if existing.Code == c.Code {
			return country.Country{}, country.ErrCountryCodeExists
		}
	}
	r.rows[c.ID] = c
	return c, nil
}

func (r *memoryCountryRepo) GetByID(_ context.Context, id string) (country.Country, error) {
	c, ok := r.rows[id]
	if !ok {
		return country.Country{}, country.ErrCountryNotFound
	}
	return c, nil
}

func (r *memoryCountryRepo) GetByCode(_ context.Context, code string) (country.Country, error) {
	for _, c := range r.rows {
		if c.Code == code {
			return c, nil
		}
	}
	return country.Country{}, country.ErrCountryNotFound
}

func (r *memoryCountryRepo) List(_ context.Context, activeOnly bool) ([]country.Country, error) {
	var result []country.Country
	for _, c := range r.rows {
		if activeOnly && !c.IsActive {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *memoryCountryRepo) Update(_ context.Context, c country.Country) (country.Country, error) {
	r.rows[c.ID] = c
	return c, nil
}

func (r *memoryCountryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return country.ErrCountryNotFound
	}
	delete(r.rows, id)
	return nil
}

func TestCreateCountryNormalizesCodes(t *testing.T) {
	svc := NewCountryService(&memoryCountryRepo{rows: map[string]country.Country{}})

	resp, err := svc.CreateCountry(context.Background(), country.CreateCountryRequest{
		Code: " kz ", Name: "Kazakhstan", Currency: "kzt",
	})
	require.NoError(t, err)
	assert.Equal(t, "KZ", resp.Code)
	assert.Equal(t, "KZT", resp.Currency)
	assert.True(t, resp.IsActive)
	assert.NotEmpty(t, resp.ID)

	_, err = svc.CreateCountry(context.Background(), country.CreateCountryRequest{
		Code: "KZ", Name: "Again", Currency: "KZT",
	})
	assert.ErrorIs(t, err, country.ErrCountryCodeExists)
}

func TestUpdateCountryPatchesFields(t *testing.T) {
	repo := &memoryCountryRepo{rows: map[string]country.Country{}}
	svc := NewCountryService(repo)
	ctx := context.Background()

	created, err := svc.CreateCountry(ctx, country.CreateCountryRequest{Code: "UZ", Name: "Uzbekistan", Currency: "UZS"})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdateCountry(ctx, country.UpdateCountryRequest{ID: created.ID, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Uzbekistan", updated.Name)

	active, err := svc.ListCountries(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListCountries(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateCountryValidation(t *testing.T) {
	svc := NewCountryService(&memoryCountryRepo{rows: map[string]country.Country{}})

	_, err := svc.CreateCountry(context.Background(), country.CreateCountryRequest{Code: "K1", Currency: "KZ"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code")
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "currency")
}
