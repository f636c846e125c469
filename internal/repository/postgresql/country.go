package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/country"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type countryRepositoryImpl struct {
	db *database.DB
}

func NewCountryRepository(db *database.DB) country.CountryRepository {
	return &countryRepositoryImpl{db: db}
}

const countryColumns = `id, code, name, currency, is_active, created_at, updated_at`

func scanCountry(row pgx.Row) (country.Country, error) {
	var c country.Country
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Currency, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create implements country.CountryRepository.
func (r *countryRepositoryImpl) Create(ctx context.Context, c country.Country) (country.Country, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO countries (id, code, name, currency, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + countryColumns

	created, err := scanCountry(q.QueryRow(ctx, query, c.ID, c.Code, c.Name, c.Currency, c.IsActive))
	if err != nil {
		if isUniqueViolation(err) {
			return country.Country{}, country.ErrCountryCodeExists
		}
		return country.Country{}, fmt.Errorf("failed to create country: %w", err)
	}
	return created, nil
}

// GetByID implements country.CountryRepository.
func (r *countryRepositoryImpl) GetByID(ctx context.Context, id string) (country.Country, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanCountry(q.QueryRow(ctx, `SELECT `+countryColumns+` FROM countries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return country.Country{}, country.ErrCountryNotFound
		}
		return country.Country{}, fmt.Errorf("failed to get country by id %s: %w", id, err)
	}
	return found, nil
}

// GetByCode implements country.CountryRepository.
func (r *countryRepositoryImpl) GetByCode(ctx context.Context, code string) (country.Country, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanCountry(q.QueryRow(ctx, `SELECT `+countryColumns+` FROM countries WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return country.Country{}, country.ErrCountryNotFound
		}
		return country.Country{}, fmt.Errorf("failed to get country by code %s: %w", code, err)
	}
	return found, nil
}

// List implements country.CountryRepository.
func (r *countryRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]country.Country, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + countryColumns + ` FROM countries`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	var countries []country.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}
	return countries, nil
}

// Update implements country.CountryRepository.
func (r *countryRepositoryImpl) Update(ctx context.Context, c country.Country) (country.Country, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE countries
		SET name = $2, currency = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + countryColumns

	updated, err := scanCountry(q.QueryRow(ctx, query, c.ID, c.Name, c.Currency, c.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return country.Country{}, country.ErrCountryNotFound
		}
		return country.Country{}, fmt.Errorf("failed to update country %s: %w", c.ID, err)
	}
	return updated, nil
}

// Delete implements country.CountryRepository.
func (r *countryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return country.ErrCountryInUse
		}
		return fmt.Errorf("failed to delete country %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return country.ErrCountryNotFound
	}
	return nil
}
