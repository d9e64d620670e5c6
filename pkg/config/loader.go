package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load populates the provided struct from environment variables using the
// `env` field tags. A .env file in the working directory is loaded once per
// process before the first parse; a missing file is not an error.
//
// Fields tagged with `env:"NAME,required"` cause Load to fail when the
// variable is absent, which is how required secrets fail closed at startup.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics on failure. Intended for configuration
// the process cannot run without, such as signing secrets.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}
