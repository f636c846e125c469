package settings

import "context"

type SettingsRepository interface {
	List(ctx context.Context) ([]Setting, error)
	Upsert(ctx context.Context, key, value string) error
}
