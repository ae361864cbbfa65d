package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/audit"
	"github.com/BruksfildServices01/salas-reservas/internal/config"
	dbpkg "github.com/BruksfildServices01/salas-reservas/internal/db"
	infraRepo "github.com/BruksfildServices01/salas-reservas/internal/infra/repository"
	"github.com/BruksfildServices01/salas-reservas/internal/middleware"
	"github.com/BruksfildServices01/salas-reservas/internal/routes"
	"github.com/BruksfildServices01/salas-reservas/internal/session"
	"github.com/BruksfildServices01/salas-reservas/internal/workspace"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx := context.Background()

	// ======================================================
	// TOKENS
	// ======================================================
	var tokens session.TokenStore = session.NewMemoryTokenStore(cfg.SessionTTL)
	if cfg.RedisAddr != "" {
		rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		tokens = session.NewRedisTokenStore(rdb, cfg.SessionTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, session tokens kept in memory")
	}

	// ======================================================
	// AUDIT
	// ======================================================
	deps := routes.Deps{Config: cfg, Audit: audit.Nop(), Logger: logger}
	var dispatcher *audit.Dispatcher
	if cfg.DBUrl != "" {
		db, err := dbpkg.NewDB(cfg, logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer dbpkg.Close(db)

		repo := infraRepo.NewAuditGormRepository(db)
		dispatcher = audit.NewDispatcher(audit.New(repo), logger)
		deps.Audit = dispatcher
		deps.AuditLogs = repo
	} else {
		logger.Warn("DATABASE_URL not set, audit disabled")
	}

	// ======================================================
	// WORKSPACES
	// ======================================================
	api := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithRetries(cfg.APIRetries),
		apiclient.WithLogger(logger.Named("api")),
	)
	deps.Registry = workspace.NewRegistry(workspace.Options{
		API:     api,
		Tokens:  tokens,
		Admins:  cfg.Admins,
		Audit:   deps.Audit,
		Idle:    cfg.WorkspaceIdle,
		MaxLive: cfg.MaxWorkspaces,
		Logger:  logger,
	})

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweep(sweepCtx, deps.Registry, cfg.WorkspaceIdle, logger)

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	routes.RegisterRoutes(router, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.Addr()),
			zap.String("api", api.BaseURL()),
			zap.Int("admins", len(cfg.Admins.Emails())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range signals {
		if sig != syscall.SIGHUP {
			break
		}
		cfg.ReloadAdmins()
		logger.Info("admin allowlist reloaded", zap.Int("admins", len(cfg.Admins.Emails())))
	}

	stopSweep()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if dispatcher != nil {
		if err := dispatcher.Close(shutdownCtx); err != nil {
			logger.Warn("audit queue not drained", zap.Error(err))
		}
	}
	logger.Info("server stopped")
}

// sweep evicts idle workspaces twice per idle period.
func sweep(ctx context.Context, reg *workspace.Registry, idle time.Duration, logger *zap.Logger) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := reg.Sweep(); n > 0 {
				logger.Debug("idle workspaces evicted", zap.Int("count", n), zap.Int("live", reg.Len()))
			}
		}
	}
}

func newLogger() *zap.Logger {
	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := zcfg.Build()
	return logger
}
