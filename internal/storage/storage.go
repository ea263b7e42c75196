package storage

import (
	"fmt"

	"classenum/internal/config"
	"classenum/internal/domain"
)

// Storage persists and loads scan indexes (e.g. for the browse viewer).
type Storage interface {
	Save(index *domain.Index) error
	Load() (*domain.Index, error)
}

// JSONStorage stores the index in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Open returns the backend selected by the --store flag
func Open(cfg *config.Config) (Storage, error) {
	switch cfg.Flags.Store {
	case "", config.StoreJSON:
		return NewJSONStorage(cfg), nil
	case config.StoreSQL:
		st, err := NewSQLStorage(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Flags.Store)
	}
}
