package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Identity   string        `env:"EIGHTYSEVEN_IDENTITY" envDefault:"default"` // store namespace
	Host       string        `env:"EIGHTYSEVEN_HOST"`                          // overrides the stored host
	APIPath    string        `env:"EIGHTYSEVEN_API_PATH" envDefault:"/api/v1"`
	Timeout    time.Duration `env:"EIGHTYSEVEN_TIMEOUT" envDefault:"10s"`
	Debug      bool          `env:"EIGHTYSEVEN_DEBUG"`
	ConfigFile string        `env:"EIGHTYSEVEN_CONFIG"` // explicit store file instead of the XDG default
}

// ParseEnv loads Config from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
