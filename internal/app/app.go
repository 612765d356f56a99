package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/courierlabs/nameplate/internal/config"
	"github.com/courierlabs/nameplate/internal/httpserver"
	"github.com/courierlabs/nameplate/internal/httpserver/deps"
	"github.com/courierlabs/nameplate/internal/logger"
	"github.com/courierlabs/nameplate/internal/naming"
	"github.com/courierlabs/nameplate/internal/redis"
	"github.com/courierlabs/nameplate/internal/registry"
	"github.com/courierlabs/nameplate/internal/scheduler"
	"github.com/courierlabs/nameplate/internal/sources/topology"
	redisstore "github.com/courierlabs/nameplate/internal/store/redis"
	"github.com/courierlabs/nameplate/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	redis    *goredis.Client
	registry *registry.Memory
	reloader *scheduler.TopologyReloader
	gc       *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Naming strategy is built once; every identifier derives from it.
	strategy := naming.NewStrategy(cfg.NamingDomain)
	if cfg.HostLabel != "" {
		strategy.SetHostLabel(cfg.HostLabel)
	}
	loggerClient.Info("naming strategy initialized",
		logger.String("domain", strategy.Domain()),
		logger.String("host_label", strategy.HostLabel()))

	// Initialize Redis early - fail fast if unavailable
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}

	reg := registry.NewMemory()
	store := redisstore.NewStore(redisClient)

	// Seed the registry from Redis so identifiers from a previous run
	// are visible before the first reload completes.
	syncer := scheduler.NewRedisSyncer(store, reg, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync from redis on startup, will load from topology",
			logger.Error(err))
	}

	reloadTrigger := make(chan struct{}, 1)

	registrar := topology.NewRegistrar(strategy, loggerClient)
	reloader := scheduler.NewTopologyReloader(
		cfg.TopologyFile,
		registrar,
		store,
		reg,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	gc := scheduler.NewGarbageCollector(
		store,
		reg,
		loggerClient,
		cfg.GCInterval,
		cfg.GCThreshold,
	)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		TopologyFile:  cfg.TopologyFile,
		RedisClient:   redisClient,
		Registry:      reg,
		Strategy:      strategy,
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   server,
		redis:    redisClient,
		registry: reg,
		reloader: reloader,
		gc:       gc,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting nameplate %s on %s (commit=%s, built=%s, go=%s)",
		version.Version, a.cfg.ListenPort, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start topology reloader (derives identifiers and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start topology reloader: %w", err)
	}
	a.logger.Info("topology reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("nameplate stopped cleanly")
	return nil
}
