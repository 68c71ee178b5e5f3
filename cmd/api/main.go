package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/config"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/dashboard"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/db"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/logger"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/realtime"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/repository"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/server"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/admin"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/catalog"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/order"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/session"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
)

type sessionBackend interface {
	session.Store
	session.Locker
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.ForEnv(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat))
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Connect(cfg.DBDSN, log, cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	if err := db.Seed(gdb, log); err != nil {
		return err
	}

	// Redis opsional: tanpa Redis state disimpan di memori proses
	var (
		rdb   *redis.Client
		store sessionBackend
	)
	rdb = realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	err = rdb.Ping(pingCtx).Err()
	cancelPing()
	if err != nil {
		log.Warn("redis not reachable, using in-memory sessions", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		rdb = nil
		store = session.NewMemoryStore()
	} else {
		log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
		store = session.NewRedisStore(rdb)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Warn("unknown APP_TIMEZONE, using UTC", zap.String("tz", cfg.TimeZone), zap.Error(err))
	}

	var bot telegram.Bot
	if cfg.Telegram.BotToken != "" {
		bot = telegram.NewAPIBot(cfg.Telegram.BotToken)
	}
	bridge := telegram.NewBridge(cfg.Telegram, bot, log)
	bridge.Init(ctx)

	hub := realtime.NewHub(log)
	notifier := realtime.NewNotifier(hub, rdb, log)

	services := repository.NewGormServiceRepository(gdb)
	orders := repository.NewGormOrderRepository(gdb)
	profiles := repository.NewGormProfileRepository(gdb)

	app := server.New(server.Deps{
		Config:    cfg,
		Log:       log,
		Bridge:    bridge,
		Catalog:   catalog.NewCatalogService(services, log),
		Orders:    order.NewOrderService(services, orders, bridge, notifier, store, log),
		Dashboard: dashboard.NewCoordinator(store, store, services, loc, log),
		Admin:     admin.NewAdminService(profiles, orders, store, notifier, log),
		Hub:       hub,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return hub.Run(gctx) })
	if rdb != nil {
		g.Go(func() error { return realtime.Relay(gctx, rdb, hub, log) })
	}
	if bot != nil {
		g.Go(func() error { return bridge.Run(gctx) })
	}
	g.Go(func() error {
		log.Info("http listening", zap.String("port", cfg.AppPort))
		return app.Listen(":" + cfg.AppPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := app.ShutdownWithContext(shutdownCtx)
		if rdb != nil {
			err = errors.Join(err, rdb.Close())
		}
		if sqlDB, dbErr := gdb.DB(); dbErr == nil {
			err = errors.Join(err, sqlDB.Close())
		}
		return err
	})

	return g.Wait()
}
