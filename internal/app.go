package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"rental-search-service/internal/adapters/cache"
	logger_adapter "rental-search-service/internal/adapters/logger"
	postgres_adapter "rental-search-service/internal/adapters/postgres"
	rabbitmq_adapter "rental-search-service/internal/adapters/rabbitmq"
	"rental-search-service/internal/adapters/rest"
	"rental-search-service/internal/configs"
	"rental-search-service/internal/constants"
	"rental-search-service/internal/core/port"
	"rental-search-service/internal/core/usecase"
	fluentlogger "rental-search-service/pkg/fluent_logger"
	"rental-search-service/pkg/postgres"
	"rental-search-service/pkg/rabbitmq/rabbitmq_common"
	"rental-search-service/pkg/rabbitmq/rabbitmq_producer"
	redisclient "rental-search-service/pkg/redis_client"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

// App wires every adapter of the search service and owns their lifecycle.
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	connManager     *rabbitmq_common.ConnectionManager
	eventsPublisher *rabbitmq_producer.Publisher
}

// NewApp is the composition root. envPath optionally names the .env file to load.
func NewApp(envPath ...string) (*App, error) {
	appConfig, err := configs.LoadConfig(envPath...)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	baseLogger, err := app.initLoggers()
	if err != nil {
		return nil, err
	}
	app.logger = baseLogger.WithFields(port.Fields{"component": "app"})

	if err := app.initStorage(); err != nil {
		app.close()
		return nil, err
	}
	pgStore, err := postgres_adapter.NewListingSearchAdapter(app.dbPool)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create listing search adapter: %w", err)
	}

	var store port.ListingStorePort = pgStore
	if appConfig.Redis.Enabled {
		store, err = app.initSearchCache(pgStore)
		if err != nil {
			app.close()
			return nil, err
		}
	}

	var events port.SearchEventsPort
	if appConfig.RabbitMQ.Enabled {
		events, err = app.initSearchEvents(baseLogger)
		if err != nil {
			app.close()
			return nil, err
		}
	} else {
		app.logger.Info("RabbitMQ disabled, search events are not published", nil)
	}

	searchListingsUseCase := usecase.NewSearchListingsUseCase(store, events, usecase.SearchOptions{
		RadiusKm:     appConfig.Search.RadiusKm,
		QueryTimeout: appConfig.Search.QueryTimeout,
	})
	getListingDetailsUseCase := usecase.NewGetListingDetailsUseCase(store)
	getDictionariesUseCase := usecase.NewGetDictionariesUseCase()

	listingsHandler := rest.NewListingsHandler(searchListingsUseCase, getListingDetailsUseCase, rest.PagingConfig{
		DefaultLimit: appConfig.Search.DefaultLimit,
		MaxLimit:     appConfig.Search.MaxLimit,
	})
	dictionariesHandler := rest.NewDictionariesHandler(getDictionariesUseCase)

	var extraMiddleware []func(http.Handler) http.Handler
	if appConfig.Rest.RateLimitRPS > 0 {
		extraMiddleware = append(extraMiddleware, rest.NewRateLimiter(appConfig.Rest.RateLimitRPS, appConfig.Rest.RateLimitBurst).Limit)
		app.logger.Info("Rate limiting enabled", port.Fields{"rps": appConfig.Rest.RateLimitRPS, "burst": appConfig.Rest.RateLimitBurst})
	}

	app.apiServer = rest.NewServer(appConfig.Rest.PORT, appConfig.Rest.AllowedOrigins, listingsHandler, dictionariesHandler, baseLogger, extraMiddleware...)
	app.logger.Info("REST API server configured.", nil)

	return app, nil
}

// initLoggers builds stdout logging plus Fluent Bit when enabled, fanned out by one multi-logger.
func (a *App) initLoggers() (port.LoggerPort, error) {
	cfg := a.config
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.IsJSON,
		UseColor: !cfg.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if cfg.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(cfg.FluentBit.Level))
		if err != nil {
			_ = fluentClient.Close()
			return nil, err
		}
		a.fluentClient = fluentClient
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers),
		"fluent_enabled": cfg.FluentBit.Enabled,
	})
	return baseLogger, nil
}

func (a *App) initStorage() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbPool, err := postgres.NewClient(ctx, postgres.Config{
		DatabaseURL: a.config.Postgres.DatabaseURL,
		MaxConns:    a.config.Postgres.MaxConns,
	})
	if err != nil {
		a.logger.Error("Failed to connect to PostgreSQL", err, nil)
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	a.logger.Info("Successfully connected to PostgreSQL pool!", port.Fields{"max_conns": dbPool.Config().MaxConns})
	return nil
}

func (a *App) initSearchCache(next port.ListingStorePort) (port.ListingStorePort, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := redisclient.NewClient(ctx, redisclient.Config{
		Addr:     a.config.Redis.Addr,
		Password: a.config.Redis.Password,
		DB:       a.config.Redis.DB,
	})
	if err != nil {
		a.logger.Error("Failed to connect to Redis", err, port.Fields{"addr": a.config.Redis.Addr})
		return nil, err
	}
	a.redisClient = client

	redisCache, err := cache.NewRedisCache(client)
	if err != nil {
		return nil, err
	}
	store, err := cache.NewCachedListingStore(next, redisCache, a.config.Redis.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}
	a.logger.Info("Search result cache enabled.", port.Fields{"ttl": a.config.Redis.CacheTTL.String()})
	return store, nil
}

func (a *App) initSearchEvents(baseLogger port.LoggerPort) (port.SearchEventsPort, error) {
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		a.logger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             constants.SearchEventsExchange,
		ExchangeType:             constants.SearchEventsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create search events publisher", err, nil)
		return nil, fmt.Errorf("failed to create search events publisher: %w", err)
	}
	a.eventsPublisher = publisher

	events, err := rabbitmq_adapter.NewSearchEventsAdapter(publisher, constants.RoutingKeySearchPerformed)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Search events publisher initialized.", port.Fields{"exchange": constants.SearchEventsExchange})
	return events, nil
}

// Run serves HTTP until SIGINT/SIGTERM or a server failure, then shuts everything down.
func (a *App) Run() error {
	defer a.close()

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Rest.PORT})

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		runErr = err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(ctx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}
	return runErr
}

// close releases resources in reverse order of creation; nil members are skipped.
func (a *App) close() {
	if a.eventsPublisher != nil {
		if err := a.eventsPublisher.Close(); err != nil {
			a.logger.Error("Error closing search events publisher", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
	if a.logger != nil {
		a.logger.Info("Application shut down gracefully.", nil)
	}
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
