package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/hoopscheduler/external/authprovider"
	"github.com/riskibarqy/hoopscheduler/external/notification"
	"github.com/riskibarqy/hoopscheduler/external/routeprovider"
	"github.com/riskibarqy/hoopscheduler/external/weather"
	"github.com/riskibarqy/hoopscheduler/internal/conflict"
	"github.com/riskibarqy/hoopscheduler/internal/config"
	"github.com/riskibarqy/hoopscheduler/internal/domain/assignment"
	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/division"
	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
	"github.com/riskibarqy/hoopscheduler/internal/domain/schedulelog"
	"github.com/riskibarqy/hoopscheduler/internal/domain/season"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/heatpolicy"
	cacherepo "github.com/riskibarqy/hoopscheduler/internal/infrastructure/repository/cache"
	postgresrepo "github.com/riskibarqy/hoopscheduler/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/hoopscheduler/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/hoopscheduler/internal/platform/cache"
	idgen "github.com/riskibarqy/hoopscheduler/internal/platform/id"
	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
	"github.com/riskibarqy/hoopscheduler/internal/platform/metrics"
	"github.com/riskibarqy/hoopscheduler/internal/scheduler"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

// NewHTTPHandler wires every repository, external collaborator, and use
// case into a ready-to-serve router. The returned close func releases the
// database (and, when CACHE_DRIVER=redis, cache client) connections.
func NewHTTPHandler(cfg config.Config, logger *logging.Logger) (http.Handler, func() error, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	closeFn := db.Close

	var seasonRepo season.Repository = postgresrepo.NewSeasonRepository(db)
	var divisionRepo division.Repository = postgresrepo.NewDivisionRepository(db)
	var blackoutRepo blackout.Repository = postgresrepo.NewBlackoutRepository(db)
	var venueRepo venue.Repository = postgresrepo.NewVenueRepository(db)
	var officialRepo official.Repository = postgresrepo.NewOfficialRepository(db)
	var gameRepo game.Repository = postgresrepo.NewGameRepository(db)
	var assignmentRepo assignment.Repository = postgresrepo.NewAssignmentRepository(db)
	var logRepo schedulelog.Repository = postgresrepo.NewSchedulelogRepository(db)

	var cacheStore basecache.Interface
	switch cfg.CacheDriver {
	case "redis":
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			_ = closeFn()
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		redisClient := redis.NewClient(redisOpts)
		cacheStore = basecache.NewRedisStore(redisClient, cfg.CacheDefaultTTL)
		prevClose := closeFn
		closeFn = func() error {
			redisErr := redisClient.Close()
			dbErr := prevClose()
			if redisErr != nil {
				return redisErr
			}
			return dbErr
		}
	default:
		cacheStore = basecache.NewStore(cfg.CacheDefaultTTL)
	}

	metricsRegistry := metrics.New()
	instrumentedCache := metrics.NewInstrumentedCache(cacheStore, metricsRegistry)

	seasonRepo = cacherepo.NewSeasonRepository(seasonRepo, instrumentedCache)
	divisionRepo = cacherepo.NewDivisionRepository(divisionRepo, instrumentedCache)
	venueRepo = cacherepo.NewVenueRepository(venueRepo, instrumentedCache)
	officialRepo = cacherepo.NewOfficialRepository(officialRepo, instrumentedCache)
	gameRepo = cacherepo.NewGameRepository(gameRepo, instrumentedCache)
	// Blackout dates stay uncached: correctness of a hot schedule-generation
	// read matters more than shaving a round trip on a rarely-edited table.
	blackoutRepo = cacherepo.NewBlackoutRepository(blackoutRepo)

	ids := idgen.NewUUIDGenerator()

	weatherClient := weather.NewClient(weather.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.WeatherTimeout},
		BaseURL:    cfg.WeatherAPIURL,
		APIKey:     cfg.WeatherAPIKey,
		Timeout:    cfg.WeatherTimeout,
		MaxRetries: cfg.WeatherMaxRetries,
	})
	heatConfig := heatpolicy.DefaultConfig()
	if !cfg.Features.HeatPolicy {
		heatConfig.DangerousHourStart, heatConfig.DangerousHourEnd = 0, 0
	}
	heatEvaluator := heatpolicy.NewEvaluator(weatherClient, heatConfig)

	generator := scheduler.NewGenerator(heatEvaluator)

	conflictConfig := conflict.DefaultConfig()
	detector := conflict.NewDetector(conflictConfig)

	// routeprovider.HTTPProvider/HaversineProvider are built and tested
	// (external/routeprovider) but the conflict detector's travel-time
	// check is a synchronous, context-free pure function shared by the
	// concurrent Detect fan-out; threading an HTTP round trip through it
	// would change that concurrency shape, so it stays on the haversine
	// estimate baked into internal/conflict. Left unconstructed here
	// rather than built-and-ignored.
	_ = routeprovider.NewHaversineProvider

	notifier := notification.NewPublisher(notification.PublisherConfig{
		BaseURL:          cfg.NotificationBaseURL,
		Token:            cfg.NotificationToken,
		TargetBaseURL:    cfg.NotificationTargetBaseURL,
		Retries:          cfg.NotificationRetries,
		InternalJobToken: cfg.InternalJobToken,
		Timeout:          cfg.NotificationTimeout,
		CircuitBreaker:   cfg.NotificationCircuit,
	})

	seasonSvc := usecase.NewSeasonService(seasonRepo, ids)
	divisionSvc := usecase.NewDivisionService(divisionRepo, seasonRepo, ids)
	blackoutSvc := usecase.NewBlackoutService(blackoutRepo, seasonRepo, ids)
	venueSvc := usecase.NewVenueService(venueRepo, gameRepo, ids)
	officialSvc := usecase.NewOfficialService(officialRepo, assignmentRepo, gameRepo, divisionRepo, venueRepo, ids)
	gameSvc := usecase.NewGameService(gameRepo, venueRepo, blackoutRepo, detector)
	conflictSvc := usecase.NewConflictService(gameRepo, venueRepo, blackoutRepo, officialRepo, assignmentRepo, detector)
	scheduleSvc := usecase.NewScheduleUsecase(generator, seasonRepo, venueRepo, blackoutRepo, gameRepo, logRepo, notifier, cacheStore, ids, logger, metricsRegistry)
	publicSvc := usecase.NewPublicService(gameRepo, venueRepo)

	principalCache := authprovider.NewPrincipalCache(cfg.AuthPrincipalCacheTTL, 10_000)
	authClient := authprovider.NewClient(
		&http.Client{Timeout: cfg.AuthProviderTimeout},
		cfg.AuthProviderBaseURL,
		cfg.AuthProviderIntrospectURL,
		principalCache,
	)

	handler := httpapi.NewHandler(
		seasonSvc,
		divisionSvc,
		blackoutSvc,
		venueSvc,
		officialSvc,
		scheduleSvc,
		gameSvc,
		conflictSvc,
		publicSvc,
		logger,
	)

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		Verifier:                authClient,
		Logger:                  logger,
		SwaggerEnabled:          cfg.SwaggerEnabled,
		CORSAllowedOrigins:      cfg.CORSAllowedOrigins,
		InternalJobToken:        cfg.InternalJobToken,
		RateLimitRequestsPerMin: cfg.RateLimitRequestsPerMinute,
		RateLimitPublicPerMin:   cfg.RateLimitPublicPerMinute,
		MetricsHandler:          metricsRegistry.Handler(),
	})

	return router, closeFn, nil
}

// NewHTTPServer wraps NewHTTPHandler with an *http.Server configured from
// cfg's address and timeouts, ready for ListenAndServe/Shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	handler, closeFn, err := NewHTTPHandler(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return srv, closeFn, nil
}
