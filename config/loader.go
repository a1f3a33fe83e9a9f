package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOptions holds optional file overrides for Load.
type LoaderOptions struct {
	// ConfigFile is an explicit config file path. When empty, standard
	// locations are searched.
	ConfigFile string
	// EnvFile is an explicit .env file path. When empty, ./.env is used
	// if present.
	EnvFile string
	// EnvPrefix overrides the environment variable prefix (default BOOTKIT).
	EnvPrefix string
}

// Load reads configuration from the config file, .env file, and
// environment, applies defaults, and validates the result.
func Load(opts LoaderOptions) (*Config, error) {
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = "BOOTKIT"
	}

	envFile := opts.EnvFile
	if envFile == "" && fileExists(".env") {
		envFile = ".env"
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(opts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register every key so AutomaticEnv can bind it during Unmarshal.
	// Zero values here; real defaults come from Config.ApplyDefaults.
	v.SetDefault("name", "")
	v.SetDefault("environment", "")
	v.SetDefault("max_retries", 0)
	v.SetDefault("failure_threshold", 0)
	v.SetDefault("cooldown", time.Duration(0))
	v.SetDefault("retry_delay", time.Duration(0))
	v.SetDefault("cold_start_threshold", time.Duration(0))
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.output", "")
	v.SetDefault("logging.no_color", false)
	v.SetDefault("logging.timestamp", false)
	v.SetDefault("logging.caller", false)

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile searches for config.yml in standard locations.
func findConfigFile() string {
	searchPaths := []string{
		"./config/config.yml",
		"./config.yml",
		"../config/config.yml",
	}
	for _, path := range searchPaths {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
