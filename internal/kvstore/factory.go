package kvstore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fieldstack/isp-ops-service/internal/config"
)

// New creates the primary Store implementation selected by the store config.
func New(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Dir)
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.Path)
	case "postgres":
		return NewPostgresStore(ctx, cfg, logger)
	case "redis":
		return NewRedisStore(cfg.Addr, cfg.Password, cfg.DB, logger), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}

// NewRemote creates the optional cloud-sync mirror target. Returns nil when
// no remote is configured; callers treat nil as sync disabled.
func NewRemote(ctx context.Context, cfg config.RemoteConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "redis":
		return NewRedisStore(cfg.Addr, cfg.Password, cfg.DB, logger), nil
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown remote type: %s", cfg.Type)
	}
}
