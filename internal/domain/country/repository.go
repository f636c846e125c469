package country

import "context"

type CountryRepository interface {
	Create(ctx context.Context, c Country) (Country, error)
	GetByID(ctx context.Context, id string) (Country, error)
	GetByCode(ctx context.Context, code string) (Country, error)
	List(ctx context.Context, activeOnly bool) ([]Country, error)
	Update(ctx context.Context, c Country) (Country, error)
	Delete(ctx context.Context, id string) error
}
