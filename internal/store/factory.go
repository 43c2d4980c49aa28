package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/config"
	"github.com/Malekse21/Senior-Voice/internal/store/postgres"
	"github.com/Malekse21/Senior-Voice/internal/store/sqlite"
)

// NewFromConfig selects the KV adapter by driver and wraps it.
func NewFromConfig(cfg *config.Config, log zerolog.Logger) (*Store, error) {
	var kv KV
	var err error
	switch cfg.DBDriver {
	case "sqlite":
		kv, err = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		kv, err = postgres.Open(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}
	return New(kv, log), nil
}
