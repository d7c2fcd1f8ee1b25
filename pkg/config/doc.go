// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for .env files. Each configuration type is parsed
// once per process and cached; a failed parse is not cached, so fixing the
// environment and calling Load again works.
//
// # Usage
//
//	type Config struct {
//		EmailUnitCost float64 `env:"MESSAGING_EMAIL_UNIT_COST" envDefault:"0.01"`
//		SMSSender     string  `env:"MESSAGING_SMS_SENDER" envDefault:"notifykit"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// The default .env in the working directory is read on first Load. Use LoadEnv
// beforehand to read specific files instead. ResetCache clears parsed values
// and is meant for tests.
package config
