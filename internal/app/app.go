package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dawichi/hexastats/external/riot"
	"github.com/Dawichi/hexastats/internal/config"
	"github.com/Dawichi/hexastats/internal/domain/catalog"
	"github.com/Dawichi/hexastats/internal/domain/match"
	"github.com/Dawichi/hexastats/internal/infrastructure/cachestore"
	providercache "github.com/Dawichi/hexastats/internal/infrastructure/repository/cache"
	"github.com/Dawichi/hexastats/internal/interfaces/httpapi"
	"github.com/Dawichi/hexastats/internal/platform/cache"
	"github.com/Dawichi/hexastats/internal/platform/id"
	"github.com/Dawichi/hexastats/internal/platform/logging"
	"github.com/Dawichi/hexastats/internal/platform/resilience"
	"github.com/Dawichi/hexastats/internal/scheduler"
	"github.com/Dawichi/hexastats/internal/usecase"
)

const startupTimeout = 30 * time.Second

// App owns the HTTP server and every resource the server depends on.
type App struct {
	Server *http.Server

	frontDoor *cache.FrontDoor
	janitor   *scheduler.Janitor
	closers   []func() error
	logger    *logging.Logger
}

type closableBackend interface {
	cache.Backend
	Close() error
}

// New builds the service graph. The version table is loaded before the server exists:
// a failure there aborts startup.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	a := &App{logger: logger}
	ok := false
	defer func() {
		if !ok {
			a.closeAll()
		}
	}()

	transport := newTransport(cfg, logger)
	client := riot.NewClient(riot.ClientConfig{
		Transport:      transport,
		APIKey:         cfg.RiotAPIKey,
		BaseURL:        cfg.RiotBaseURL,
		RatePerSecond:  cfg.RiotRatePerSecond,
		RateBurst:      cfg.RiotRateBurst,
		RequestTimeout: cfg.RiotTimeout * time.Duration(cfg.RiotMaxRetries+1),
		Logger:         logger.Named("riot"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RiotCircuitEnabled,
			FailureThreshold: cfg.RiotCircuitFailureCount,
			OpenTimeout:      cfg.RiotCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RiotCircuitHalfOpenMaxReq,
		},
	})
	dataDragon := riot.NewDataDragon(transport, cfg.DDragonBaseURL, logger.Named("ddragon"))

	table, err := usecase.LoadVersionTable(ctx, dataDragon, logger)
	if err != nil {
		return nil, fmt.Errorf("load version table: %w", err)
	}
	static, err := catalog.LoadStatic(cfg.CatalogOverridePath)
	if err != nil {
		return nil, fmt.Errorf("load static catalog: %w", err)
	}

	backend, err := a.newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	frontDoor, err := cache.NewFrontDoor(backend, cache.Options{
		Enabled:      cfg.CacheEnabled,
		WriteWorkers: cfg.CacheWriteWorkers,
		Logger:       logger.Named("cache"),
	})
	if err != nil {
		return nil, fmt.Errorf("create cache front door: %w", err)
	}
	a.frontDoor = frontDoor

	if cfg.CacheEnabled {
		janitor, err := scheduler.NewJanitor(frontDoor, scheduler.JanitorConfig{
			Interval:  cfg.CacheJanitorInterval,
			Retention: cfg.CacheRetention,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create cache janitor: %w", err)
		}
		a.janitor = janitor
	}

	provider := providercache.NewRiotProvider(client, frontDoor, providercache.ProviderTTLs{
		Account: cfg.CacheAccountTTL,
		Match:   cfg.CacheMatchTTL,
	})

	summoners := usecase.NewSummonerService(provider, frontDoor, table, static, usecase.SummonerServiceConfig{
		ProfileTTL:            cfg.CacheProfileTTL,
		MasteriesDefaultLimit: cfg.MasteriesDefaultLimit,
	}, logger.Named("summoners"))
	matches := usecase.NewMatchService(provider, frontDoor, match.NewNormalizer(static, table), usecase.MatchServiceConfig{
		DefaultCount: cfg.GamesDefaultLimit,
		MaxCount:     cfg.GamesMaxLimit,
		MatchIDsTTL:  cfg.CacheMatchIDsTTL,
		FetchWorkers: cfg.GamesFetchWorkers,
	}, logger.Named("matches"))
	champions := usecase.NewChampionService(table, static)

	handler := httpapi.NewHandler(summoners, matches, champions, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		IDGenerator:        id.NewUUIDGenerator(),
	})

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ok = true
	return a, nil
}

// Start launches background jobs. The caller runs Server.
func (a *App) Start() error {
	if a.janitor == nil {
		return nil
	}
	return a.janitor.Start()
}

// Shutdown stops the server, drains pending cache writes and releases the backend.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if a.janitor != nil {
		if err := a.janitor.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop cache janitor: %w", err))
		}
	}
	if err := a.closeAll(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeAll() error {
	if a.frontDoor != nil {
		a.frontDoor.Close()
		a.frontDoor = nil
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) newBackend(ctx context.Context, cfg config.Config) (cache.Backend, error) {
	var backend closableBackend

	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		redisCfg := cachestore.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			Retention: cfg.CacheRetention,
		}
		client, err := cachestore.NewRedisClient(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		backend = cachestore.NewRedisBackend(client, redisCfg)
	case config.CacheBackendPostgres:
		db, err := cachestore.OpenPostgres(ctx, cfg.DBURL, cfg.DBDisablePrepared)
		if err != nil {
			return nil, fmt.Errorf("connect postgres cache: %w", err)
		}
		backend = cachestore.NewSQLBackend(db, cachestore.DialectPostgres)
	case config.CacheBackendSQLite:
		db, err := cachestore.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		backend = cachestore.NewSQLBackend(db, cachestore.DialectSQLite)
	default:
		return cache.NewMemoryBackend(cfg.CacheRetention), nil
	}

	a.closers = append(a.closers, backend.Close)
	a.logger.Info("cache backend ready", "backend", cfg.CacheBackend)
	return backend, nil
}

func newTransport(cfg config.Config, logger *logging.Logger) riot.Transport {
	transportCfg := riot.TransportConfig{
		Timeout:    cfg.RiotTimeout,
		MaxRetries: cfg.RiotMaxRetries,
		Logger:     logger.Named("riot-transport"),
	}
	if cfg.RiotTransport == config.TransportFastHTTP {
		return riot.NewFastTransport(transportCfg)
	}
	return riot.NewHTTPTransport(nil, transportCfg)
}
