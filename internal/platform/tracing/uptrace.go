// Package tracing configures the process-wide OpenTelemetry tracer
// provider that internal/usecase and internal/interfaces/httpapi's
// startSpan helpers already call otel.Tracer against.
package tracing

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/hoopscheduler/internal/config"
	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
)

// Init configures the global OpenTelemetry tracer provider for Uptrace
// when cfg enables it, otherwise leaves the no-op provider in place so
// startSpan calls stay cheap. The returned func flushes and shuts the
// provider down and should run after the HTTP server stops.
func Init(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	noop := func(context.Context) error { return nil }

	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace tracing disabled", "uptrace_enabled", cfg.UptraceEnabled)
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)

	logger.Info("uptrace tracing enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)

	return uptrace.Shutdown, nil
}
