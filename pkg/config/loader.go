package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates the given struct from environment variables using `env`
// tags, e.g.:
//
//	type Config struct {
//	    Port      int    `env:"SELLER_HTTP_PORT" envDefault:"8004"`
//	    JWTSecret string `env:"JWT_SECRET,required"`
//	}
//
// Cross-field checks belong to the caller; Load only parses.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
