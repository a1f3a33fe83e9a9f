package bootstrap

import (
	"github.com/marketedge/bootkit/config"
	"github.com/marketedge/bootkit/logger"
)

// NewFromConfig builds an orchestrator from loaded configuration.
// Explicit options take precedence over config values.
func NewFromConfig(cfg *config.Config, opts ...Option) *Orchestrator {
	base := []Option{
		WithLogger(logger.New(&cfg.Logging, cfg.Name)),
		WithDefaultMaxRetries(cfg.MaxRetries),
		WithDefaultFailureThreshold(cfg.FailureThreshold),
		WithDefaultCooldown(cfg.Cooldown),
		WithRetryDelay(cfg.RetryDelay),
		WithColdStartThreshold(cfg.ColdStartThreshold),
	}
	return New(append(base, opts...)...)
}
