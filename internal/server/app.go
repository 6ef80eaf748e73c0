package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recruitcrm/internal/auth"
	"recruitcrm/internal/caching"
	"recruitcrm/internal/config"
	"recruitcrm/internal/jobs"
	"recruitcrm/internal/repositories"
	"recruitcrm/internal/services"
	"recruitcrm/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Version is reported by the health endpoint; overridden at build time
var Version = "dev"

const (
	shutdownTimeout  = 15 * time.Second
	reconcileTimeout = 2 * time.Minute
)

// App owns every long-lived resource of the API process
type App struct {
	Echo      *echo.Echo
	Store     *repositories.Store
	Services  Services
	Scheduler *jobs.JobScheduler

	cfg    *config.Configuration
	logger *logrus.Logger
	pool   *pgxpool.Pool
	cancel context.CancelFunc
}

// OpenStore connects the configured store. When postgres is configured but unreachable
// the in-memory store is returned with degraded set.
func OpenStore(ctx context.Context, cfg *config.Configuration) (store *repositories.Store, pool *pgxpool.Pool, degraded bool) {
	logger := cfg.Logger()
	if cfg.Database.Driver == config.StoreDriverMemory {
		logger.Info("using in-memory store")
		return repositories.NewMemoryStore(), nil, false
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.ConnTimeout, logger)
	if err != nil {
		logger.WithError(err).Warn("database unavailable, falling back to in-memory store; data will not persist")
		return repositories.NewMemoryStore(), nil, true
	}
	return repositories.NewPostgresStore(pool), pool, false
}

func openCache(cfg *config.Configuration) caching.CacheService {
	if !cfg.Redis.Enabled() {
		return caching.NewNoopCacheService()
	}
	return caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
}

func openStorage(ctx context.Context, cfg *config.Configuration) services.ObjectStorage {
	if !cfg.Minio.Enabled() {
		return nil
	}
	logger := cfg.Logger().WithField("endpoint", cfg.Minio.Endpoint)
	storage, err := services.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
	if err != nil {
		logger.WithError(err).Warn("object storage disabled")
		return nil
	}
	if err := storage.EnsureBucketExists(ctx); err != nil {
		logger.WithError(err).Warn("could not ensure export bucket exists")
	}
	return storage
}

// NewVerifier builds the bearer token verifier for the configured auth mode
func NewVerifier(ctx context.Context, cfg *config.Configuration, cache caching.CacheService) (auth.Verifier, error) {
	var verifier auth.Verifier
	switch cfg.Auth.Mode {
	case config.AuthModeHMAC:
		cfg.Logger().Warn("accepting development HMAC tokens")
		verifier = auth.NewHMACVerifier(cfg.Auth.HMACSecret)
	default:
		keyFunc, err := auth.RemoteKeySet(ctx, cfg.Auth.JWKSURL, cfg.Auth.JWKSRefresh)
		if err != nil {
			return nil, err
		}
		verifier = auth.NewFirebaseVerifier(cfg.Auth.ProjectID, keyFunc)
	}
	if cfg.Auth.CacheTokens && !caching.IsNoop(cache) {
		verifier = auth.NewCachingVerifier(verifier, cache)
	}
	return verifier, nil
}

// Bootstrap wires the API from cfg. Background work is bound to the returned App and
// released by Close.
func Bootstrap(ctx context.Context, cfg *config.Configuration) (*App, error) {
	logger := cfg.Logger()
	ctx, cancel := context.WithCancel(ctx)

	store, pool, degraded := OpenStore(ctx, cfg)
	cache := openCache(cfg)
	storage := openStorage(ctx, cfg)

	verifier, err := NewVerifier(ctx, cfg, cache)
	if err != nil {
		cancel()
		closePool(pool)
		return nil, err
	}

	e, err := New(Dependencies{
		Store:    store,
		Degraded: degraded,
		Cache:    cache,
		Storage:  storage,
		Verifier: verifier,
		Logger:   logger,
		HTTP:     cfg.HTTP,
		Firebase: cfg.Firebase,
		Version:  Version,
	})
	if err != nil {
		cancel()
		closePool(pool)
		return nil, err
	}

	app := &App{
		Echo:     e,
		Store:    store,
		Services: NewServices(store, cache, storage),
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		cancel:   cancel,
	}

	if cfg.Scheduler.ReconcileInterval > 0 {
		scheduler, err := jobs.NewJobScheduler(logger)
		if err != nil {
			app.Close()
			return nil, err
		}
		reconciler := jobs.NewApplicationsCountReconciler(app.Services.Jobs, reconcileTimeout, logger)
		if err := scheduler.ScheduleReconciler(ctx, reconciler, cfg.Scheduler.ReconcileInterval); err != nil {
			app.Close()
			return nil, err
		}
		app.Scheduler = scheduler
	}
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (a *App) Run(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.WithFields(logrus.Fields{
			"address": a.cfg.Address(),
			"store":   a.Store.Driver,
			"auth":    a.cfg.Auth.Mode,
		}).Info("starting HTTP server")
		if err := a.Echo.Start(a.cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}

// Close cancels background work, stops the scheduler and releases the database pool
func (a *App) Close() {
	a.cancel()
	if a.Scheduler != nil {
		if err := a.Scheduler.Stop(); err != nil {
			a.logger.WithError(err).Warn("stopping scheduler")
		}
	}
	closePool(a.pool)
}

func closePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
