package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/fieldstack/isp-ops-service/internal/access"
	"github.com/fieldstack/isp-ops-service/internal/config"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
	"github.com/fieldstack/isp-ops-service/internal/observability"
)

// cliEnv bundles the pieces every subcommand needs.
type cliEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	kv     kvstore.Store
}

func openEnv(ctx context.Context) (*cliEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, err
	}
	kv, err := kvstore.New(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	return &cliEnv{cfg: cfg, logger: logger, kv: kv}, nil
}

func (e *cliEnv) close() {
	e.kv.Close()
	_ = e.logger.Sync()
}

func (e *cliEnv) allowList() *access.List {
	return access.NewList(e.kv, e.logger, access.Config{
		FailOpen:   e.cfg.Auth.FailOpen,
		BcryptCost: e.cfg.Auth.BcryptCost,
	})
}
