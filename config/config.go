package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/marketedge/bootkit/logger"
)

// Config holds orchestration defaults applied to services that do not
// override them at registration time, plus logging settings.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"omitempty,oneof=development staging production"`

	// MaxRetries is the default retry budget per Ensure cycle.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries" validate:"min=0"`
	// FailureThreshold is the default circuit-breaker trip point.
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold" validate:"min=1"`
	// Cooldown is how long an open circuit blocks initialization.
	Cooldown time.Duration `yaml:"cooldown" mapstructure:"cooldown" validate:"min=0"`
	// RetryDelay is the constant delay between retries.
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay" validate:"min=0"`
	// ColdStartThreshold is the elapsed-time budget under which startup
	// is reported as a cold start.
	ColdStartThreshold time.Duration `yaml:"cold_start_threshold" mapstructure:"cold_start_threshold" validate:"min=0"`

	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// validate is shared; struct validation is stateless.
var validate = validator.New()

// ApplyDefaults fills zero values with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "bootkit"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 5
	}
	if c.Cooldown == 0 {
		c.Cooldown = 30 * time.Second
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = time.Second
	}
	if c.ColdStartThreshold == 0 {
		c.ColdStartThreshold = 5 * time.Second
	}
	c.Logging.ApplyDefaults()
}

// Validate checks field constraints and the logging sub-config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
