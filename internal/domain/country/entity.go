package country

import "time"

type Country struct {
	ID        string
	Code      string
	Name      string
	Currency  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
