package country

import "context"

type CountryService interface {
	CreateCountry(ctx context.Context, req CreateCountryRequest) (CountryResponse, error)
	GetCountry(ctx context.Context, id string) (CountryResponse, error)
	ListCountries(ctx context.Context, activeOnly bool) ([]CountryResponse, error)
	UpdateCountry(ctx context.Context, req UpdateCountryRequest) (CountryResponse, error)
	DeleteCountry(ctx context.Context, id string) error
}
