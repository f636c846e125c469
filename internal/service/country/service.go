package country

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/country"
	"github.com/google/uuid"
)

type CountryServiceImpl struct {
	countryRepo country.CountryRepository
}

func NewCountryService(countryRepo country.CountryRepository) country.CountryService {
	return &CountryServiceImpl{countryRepo: countryRepo}
}

func (s *CountryServiceImpl) CreateCountry(ctx context.Context, req country.CreateCountryRequest) (country.CountryResponse, error) {
	if err := req.Validate(); err != nil {
		return country.CountryResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return country.CountryResponse{}, fmt.Errorf("failed to generate country id: %w", err)
	}

	created, err := s.countryRepo.Create(ctx, country.Country{
		ID:       id.String(),
		Code:     req.Code,
		Name:     req.Name,
		Currency: req.Currency,
		IsActive: true,
	})
	if err != nil {
		return country.CountryResponse{}, err
	}
	return country.NewCountryResponse(created), nil
}

func (s *CountryServiceImpl) GetCountry(ctx context.Context, id string) (country.CountryResponse, error) {
	c, err := s.countryRepo.GetByID(ctx, id)
	if err != nil {
		return country.CountryResponse{}, err
	}
	return country.NewCountryResponse(c), nil
}

func (s *CountryServiceImpl) ListCountries(ctx context.Context, activeOnly bool) ([]country.CountryResponse, error) {
	countries, err := s.countryRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]country.CountryResponse, 0, len(countries))
	for _, c := range countries {
		resp = append(resp, country.NewCountryResponse(c))
	}
	return resp, nil
}

func (s *CountryServiceImpl) UpdateCountry(ctx context.Context, req country.UpdateCountryRequest) (country.CountryResponse, error) {
	if err := req.Validate(); err != nil {
		return country.CountryResponse{}, err
	}

	existing, err := s.countryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return country.CountryResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Currency != nil {
		existing.Currency = *req.Currency
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := s.countryRepo.Update(ctx, existing)
	if err != nil {
		return country.CountryResponse{}, err
	}
	return country.NewCountryResponse(updated), nil
}

func (s *CountryServiceImpl) DeleteCountry(ctx context.Context, id string) error {
	return s.countryRepo.Delete(ctx, id)
}
