// Package config loads bootkit orchestration settings from YAML files
// and environment variables.
//
// Settings are resolved in order: defaults, config file, .env file,
// then BOOTKIT_-prefixed environment variables. The loaded Config is
// validated before use.
//
//	cfg, err := config.Load(config.LoaderOptions{ConfigFile: "config.yml"})
package config
