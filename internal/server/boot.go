package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/app/routes"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/broker"
	"github.com/shashiranjanraj/orderdesk/pkg/cache"
	"github.com/shashiranjanraj/orderdesk/pkg/database"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/workerpool"
)

const (
	publishWorkers = 4
	publishTimeout = 5 * time.Second
)

// App holds the booted dependencies.
type App struct {
	DB       *gorm.DB
	Store    *repositories.GormStore
	Tokens   *auth.TokenService
	Identity *services.IdentityResolver
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Orders   *services.OrderService
	Bus      *event.Bus

	closers []func() error
}

// Boot loads config, sets up logging, opens the database and wires the
// services. Redis and RabbitMQ are optional: an empty REDIS_ADDR uses the
// in-process cache and an empty RABBIT_URL keeps events in process.
func Boot(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger.Setup(config.AppEnv(), config.LogLevel())

	if config.JWTSecretIsDefault() {
		if config.IsProduction() {
			return nil, errors.New("config: JWT_SECRET must be set when APP_ENV is production")
		}
		logger.Warn("JWT_SECRET is the built-in development secret; set it before deploying")
	}

	db, err := database.Connect()
	if err != nil {
		return nil, err
	}

	app := &App{DB: db, Bus: event.NewBus()}
	app.closers = append(app.closers, func() error { return database.Close(db) })

	store, err := app.connectCache(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	if err := app.connectBroker(); err != nil {
		app.Close()
		return nil, err
	}

	app.Store = repositories.NewStore(db)
	app.Tokens = auth.NewTokenService(config.JWTSecret(), config.AccessTokenTTL(), config.RefreshTokenTTL(), nil)
	app.Identity = services.NewIdentityResolver(app.Store)
	app.Auth = services.NewAuthService(app.Store, app.Tokens, auth.NewPasswordHasher(config.BcryptCost()))
	app.Catalog = services.NewCatalogService(app.Store, store, config.CacheTTL(), app.Bus)
	app.Orders = services.NewOrderService(app.Store, app.Bus)

	return app, nil
}

func (a *App) connectCache(ctx context.Context) (cache.Store, error) {
	addr := config.RedisAddr()
	if addr == "" {
		logger.Info("cache: using in-process store")
		return cache.NewMemory(), nil
	}

	r, err := cache.Connect(ctx, addr, config.RedisPassword())
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.closers = append(a.closers, r.Close)
	logger.Info("cache: using redis", "addr", addr)
	return r, nil
}

func (a *App) connectBroker() error {
	url := config.RabbitURL()
	if url == "" {
		return nil
	}

	conn, err := broker.Dial(url)
	if err != nil {
		return fmt.Errorf("rabbitmq: %w", err)
	}
	a.closers = append(a.closers, conn.Close)

	exchange := config.RabbitExchange()
	if err := conn.DeclareTopicExchange(exchange); err != nil {
		return fmt.Errorf("rabbitmq: declare %s: %w", exchange, err)
	}

	pool := workerpool.New(publishWorkers)
	// Registered after conn.Close so Close drains the pool first.
	a.closers = append(a.closers, func() error { pool.Shutdown(); return nil })

	broker.Forward(a.Bus, pool, broker.NewPublisher(conn.Ch, exchange), publishTimeout)
	logger.Info("events: forwarding to rabbitmq", "exchange", exchange)
	return nil
}

// Services exposes what the HTTP routes need.
func (a *App) Services() routes.Services {
	return routes.Services{
		Tokens:   a.Tokens,
		Identity: a.Identity,
		Auth:     a.Auth,
		Catalog:  a.Catalog,
		Orders:   a.Orders,
	}
}

// Ping checks the database connection.
func (a *App) Ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("close failed", "error", err.Error())
		}
	}
	a.closers = nil
}
