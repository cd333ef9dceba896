// Package providers contains dependency injection providers for the vault server.
package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/vaultofgames/vault-server/internal/config"
	"github.com/vaultofgames/vault-server/internal/logger"
	"github.com/vaultofgames/vault-server/internal/metrics"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting vault server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.App.DataPath,
		"database_driver", cfg.Database.Driver,
		"token_format", cfg.Auth.TokenFormat,
	)

	return log, nil
}

// ProvideMetrics provides the Prometheus collectors, or nil when metrics are
// disabled. A nil *metrics.Metrics records nothing.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if !cfg.Metrics.Enabled {
		return nil, nil
	}
	return metrics.New(prometheus.NewRegistry()), nil
}
