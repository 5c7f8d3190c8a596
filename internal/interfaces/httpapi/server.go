package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.opentelemetry.io/otel/codes"

	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
)

// RouterConfig carries the wiring a fresh router needs beyond the handler
// itself: the auth verifier, CORS origins, and the two rate-limit tiers
// (tenant-authenticated routes get a higher ceiling than the public feed).
type RouterConfig struct {
	Verifier                 TokenVerifier
	Logger                   *logging.Logger
	SwaggerEnabled           bool
	CORSAllowedOrigins       []string
	InternalJobToken         string
	RateLimitRequestsPerMin  int
	RateLimitPublicPerMin    int
	MetricsHandler           http.Handler
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RateLimitRequestsPerMin <= 0 {
		cfg.RateLimitRequestsPerMin = 300
	}
	if cfg.RateLimitPublicPerMin <= 0 {
		cfg.RateLimitPublicPerMin = 100
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(func(next http.Handler) http.Handler { return recoverPanic(logger, next) })
	r.Use(func(next http.Handler) http.Handler { return RequestLogging(logger, next) })
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(cfg.RateLimitRequestsPerMin, time.Minute))

	r.Get("/healthz", handler.Healthz)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.SwaggerEnabled {
		mountSwagger(r)
	}

	r.Route("/v1/public", func(pub chi.Router) {
		pub.Use(httprate.LimitByIP(cfg.RateLimitPublicPerMin, time.Minute))
		registerPublicRoutes(pub, handler)
	})

	r.Route("/v1", func(api chi.Router) {
		api.Use(func(next http.Handler) http.Handler { return RequireAuth(cfg.Verifier, next) })
		registerSeasonRoutes(api, handler)
		registerDivisionRoutes(api, handler)
		registerBlackoutRoutes(api, handler)
		registerVenueRoutes(api, handler)
		registerOfficialRoutes(api, handler)
		registerGameRoutes(api, handler)
		registerScheduleRoutes(api, handler)
		registerConflictRoutes(api, handler)
	})

	r.Route("/v1/internal/jobs", func(internal chi.Router) {
		internal.Use(func(next http.Handler) http.Handler {
			return RequireInternalJobToken(cfg.InternalJobToken, next)
		})
		registerInternalJobRoutes(internal, handler)
	})

	return RequestTracing(r)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				panicErr := fmt.Errorf("panic recovered: %v", rec)
				span.RecordError(panicErr)
				span.SetStatus(codes.Error, "panic")
				logger.ErrorContext(ctx, "panic recovered",
					"event", "panic_recovered",
					"error_code", "panic",
					"panic", rec,
				)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
