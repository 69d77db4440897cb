package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fieldstack/isp-ops-service/internal/access"
	"github.com/fieldstack/isp-ops-service/internal/api/http/handlers"
	"github.com/fieldstack/isp-ops-service/internal/auth"
	"github.com/fieldstack/isp-ops-service/internal/cloudsync"
	"github.com/fieldstack/isp-ops-service/internal/config"
	"github.com/fieldstack/isp-ops-service/internal/events"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
	"github.com/fieldstack/isp-ops-service/internal/observability"
	"github.com/fieldstack/isp-ops-service/internal/service"
	"github.com/fieldstack/isp-ops-service/internal/store"

	apihttp "github.com/fieldstack/isp-ops-service/internal/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service terminated", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	kv, err := kvstore.New(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer kv.Close()

	remote, err := kvstore.NewRemote(ctx, cfg.Remote, logger)
	if err != nil {
		return err
	}
	if remote != nil {
		defer remote.Close()
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	dispatcher := events.NewInMemoryDispatcher()
	syncer := cloudsync.New(kv, remote, logger, dispatcher, cfg.Sync.Debounce())

	st := store.New(kv, logger, store.Options{
		OnMutate: func(key string) {
			metrics.RecordMutation(key)
			syncer.MarkDirty(key)
			_ = dispatcher.Publish(ctx, events.Event{
				ID:         uuid.NewString(),
				Type:       events.EventCollectionMutated,
				Collection: key,
				Timestamp:  time.Now(),
			})
		},
		OnPersistError: func(key string, err error) {
			metrics.RecordPersistFailure(key)
		},
	})
	if err := st.Load(ctx); err != nil {
		return err
	}

	allowed := access.NewList(kv, logger, access.Config{
		FailOpen:   cfg.Auth.FailOpen,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err := allowed.Load(ctx, kv); err != nil {
		return err
	}
	logger.Info("allow-list loaded",
		zap.Int("operators", allowed.Len()),
		zap.Bool("fail_open", cfg.Auth.FailOpen))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	clientSvc := service.NewClientService(st, dispatcher)
	ticketSvc := service.NewTicketService(st, dispatcher)
	equipmentSvc := service.NewEquipmentService(st, dispatcher)
	fieldopsSvc := service.NewFieldOpsService(st, dispatcher)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	apihttp.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Auth:      auth.NewMiddleware(tokens, allowed),
		AuthH:     handlers.NewAuthHandler(tokens, allowed),
		Clients:   handlers.NewClientHandler(clientSvc, st),
		Tickets:   handlers.NewTicketHandler(ticketSvc, st),
		Equipment: handlers.NewEquipmentHandler(equipmentSvc, st),
		Fieldwork: handlers.NewFieldworkHandler(fieldopsSvc, st),
		System:    handlers.NewSystemHandler(cfg, kv, syncer),
		Metrics:   registry,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("store", cfg.Store.Type),
			zap.Bool("remote_sync", syncer.Enabled()))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}

	// Drain pending collection writes before pushing a final sync.
	st.Flush()
	allowed.Flush()
	syncer.Close()
	if syncer.Enabled() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		syncer.Flush(flushCtx)
		cancel()
	}

	logger.Info("shutdown complete")
	return nil
}
