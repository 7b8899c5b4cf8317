// Package observability wires tracing, log export and profiling from config.
// Every Init function is safe to call with the feature disabled and returns a
// shutdown hook that is never nil.
package observability

import (
	"context"

	"github.com/riskibarqy/cricket-fantasy/internal/config"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

func noopShutdown(context.Context) error { return nil }

// InitUptrace installs the global OpenTelemetry providers. When logs are
// enabled, context-aware log records are also exported as OTel log records.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	logging.SetMirror(nil)
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled, "dsn_set", cfg.UptraceDSN != "")
		return noopShutdown, nil
	}

	opts := []uptrace.Option{
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	}
	uptrace.ConfigureOpentelemetry(opts...)

	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newLogExporter(cfg.ServiceVersion).mirror)
	}
	logger.Info("uptrace enabled", "logs_enabled", cfg.UptraceLogsEnabled)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}
