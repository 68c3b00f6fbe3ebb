// Package driver выбирает адаптер key/value хранилища по конфигурации.
package driver

import (
	"context"
	"fmt"
	"strings"

	"notes-keeper/internal/config"
	"notes-keeper/internal/store"
	"notes-keeper/internal/store/boltdb"
	"notes-keeper/internal/store/memory"
	"notes-keeper/internal/store/sqlite"
)

// Поддерживаемые драйверы хранилища
const (
	Memory = "memory"
	Bolt   = "bolt"
	SQLite = "sqlite"
)

// Open создает хранилище, указанное в конфигурации
func Open(ctx context.Context, cfg *config.ConfigStorage) (store.Backend, error) {
	if cfg == nil {
		return memory.NewStore(0), nil
	}

	switch strings.ToLower(cfg.Driver) {
	case "", Memory:
		return memory.NewStore(int64(cfg.QuotaBytes)), nil
	case Bolt:
		if cfg.Path == "" {
			return nil, fmt.Errorf("storage driver %q requires path", cfg.Driver)
		}
		s, err := boltdb.NewStore(cfg.Path, cfg.Bucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	case SQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("storage driver %q requires path", cfg.Driver)
		}
		s, err := sqlite.NewStore(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
