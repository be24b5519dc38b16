package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/daniilsolovey/fu-news/config"
	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/newsportal"
	"github.com/daniilsolovey/fu-news/internal/ratelimit"
	"github.com/daniilsolovey/fu-news/internal/rest"
	"github.com/daniilsolovey/fu-news/internal/rpc"
	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const tokenIssuer = "fu-news"

type App struct {
	DB      *db.Repository
	Logger  *slog.Logger
	Echo    *echo.Echo
	Config  *config.Config
	Manager *newsportal.Manager

	redis *redis.Client
}

func New(cfg *config.Config, dbConnect *pg.DB, logger *slog.Logger) *App {
	if cfg.App.LogQueries {
		dbConnect.AddQueryHook(db.NewQueryHook(logger))
	}

	database := db.New(dbConnect)
	issuer := cfg.Auth.Issuer
	if issuer == "" {
		issuer = tokenIssuer
	}
	tokens := newsportal.NewTokens(cfg.Auth.Secret, issuer, cfg.Auth.TTL.Duration)
	manager := newsportal.NewManager(
		newsportal.NewRepository(database),
		tokens,
		newsportal.Admin{Email: cfg.Auth.AdminEmail, Password: cfg.Auth.AdminPassword},
	)

	a := &App{
		DB:      database,
		Logger:  logger,
		Config:  cfg,
		Manager: manager,
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.Echo = rest.RegisterRoutes(rest.Options{
		Portal:   manager,
		Tokens:   tokens,
		Limiter:  a.limiter(cfg.RateLimit.Config()),
		Registry: registry,
		RPC:      rpc.New(logger, manager),
		Logger:   logger,
	})

	return a
}

// limiter picks the shared redis store when an address is configured.
func (a *App) limiter(cfg ratelimit.Config) ratelimit.Store {
	cfg = cfg.Normalize()
	if cfg.RedisAddr == "" {
		return ratelimit.NewMemoryStore(cfg)
	}

	a.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	a.Logger.Info("rate limit uses redis", "addr", cfg.RedisAddr)
	return ratelimit.NewRedisStore(a.redis, cfg)
}

func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort(a.Config.App.Host, strconv.Itoa(a.Config.App.Port))
	a.Logger.InfoContext(ctx, "service starting", "addr", addr)

	if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start http server: %w", err)
	}
	return nil
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	if a.redis != nil {
		err = errors.Join(err, a.redis.Close())
	}

	return err
}
