// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// # Usage
//
//	type SessionConfig struct {
//	    Secret string        `env:"SESSION_SECRET,required"`
//	    TTL    time.Duration `env:"SESSION_TTL" envDefault:"168h"`
//	}
//
//	var cfg SessionConfig
//	config.MustLoad(&cfg)
//
// MustLoad panics when a required variable is missing, so misconfigured
// deployments fail before serving any traffic.
package config
