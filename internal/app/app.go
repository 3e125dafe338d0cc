package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/tripdesk/crm-admin/internal/config"
	"github.com/tripdesk/crm-admin/internal/database"
	"github.com/tripdesk/crm-admin/internal/middleware"
	"github.com/tripdesk/crm-admin/internal/pkg/blob"
	pkgcron "github.com/tripdesk/crm-admin/internal/pkg/cron"
	pkgredis "github.com/tripdesk/crm-admin/internal/pkg/redis"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	logger *zap.Logger
	sched  *pkgcron.Scheduler
	cancel context.CancelFunc
	closer []func() error
}

// Options are the collaborators an App is assembled from.
type Options struct {
	Stores Stores
	Blobs  blob.Store
	// Redis is optional. Without it idempotence and rate limiting are off
	// and logouts are remembered in process memory.
	Redis *redis.Client
	// SQL is pinged by the health check when set.
	SQL *sql.DB
	// StartCron runs the scheduled jobs in the background.
	StartCron bool
}

// New initializes the application: config → DB → Redis → storage → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	applyRuntimeSettings(cfg, logger)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.Redis.URLValue())
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	blobs, err := openBlobStore(cfg)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("database: %w", err)
	}

	a := Build(logger, cfg, Options{
		Stores:    GormStores(db),
		Blobs:     blobs,
		Redis:     rc.Raw(),
		SQL:       sqlDB,
		StartCron: true,
	})
	a.closer = append(a.closer, rc.Close, sqlDB.Close)
	return a, nil
}

// Build assembles the router and scheduler from opts.
func Build(logger *zap.Logger, cfg *config.AppConfig, opts Options) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(newCORS(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:    cfg,
		router: router,
		logger: logger,
		sched:  pkgcron.New(logger.Named("cron")),
		cancel: cancel,
	}
	a.registerRoutes(opts)
	if opts.StartCron {
		go a.sched.Start(ctx)
	}
	return a
}

func openBlobStore(cfg *config.AppConfig) (blob.Store, error) {
	s := cfg.Storage
	if s.Driver == config.StorageS3 {
		return blob.NewS3(blob.S3Options{
			Endpoint:        s.Endpoint,
			Region:          s.Region,
			Bucket:          s.Bucket,
			AccessKeyID:     s.AccessKeyID,
			SecretAccessKey: s.SecretAccessKey,
			PathStyle:       s.PathStyle,
			CustomDomain:    s.CustomDomain,
		})
	}
	return blob.NewLocal(cfg.StaticDir(), s.PublicBase)
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Scheduler exposes the background jobs.
func (a *App) Scheduler() *pkgcron.Scheduler { return a.sched }

// Shutdown stops background jobs and closes connections.
func (a *App) Shutdown() {
	a.cancel()
	for _, c := range a.closer {
		if err := c(); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
}

var processStart = time.Now()
