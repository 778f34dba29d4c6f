// Package config assembles the process configuration from the
// environment. A .env file in the working directory is honored when
// present; real environment variables win over it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/store"
)

// Config is the full process configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// CORSOrigins are the allowed browser origins. An entry of "*"
	// allows all.
	CORSOrigins []string

	// Store selects the database backend.
	Store store.Config

	// LLM selects and configures the generation provider.
	LLM llm.Config
}

// Load reads configuration from the environment, after loading .env if
// one exists.
func Load() (Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := Config{
		Port:        8080,
		CORSOrigins: []string{"*"},
		Store: store.Config{
			Driver: "sqlite",
			DSN:    "mathquest.db",
		},
		LLM: llm.ConfigFromEnv(),
	}

	if v := os.Getenv("MATHQUEST_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("invalid MATHQUEST_PORT: %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("MATHQUEST_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitOrigins(v)
	}

	if v := os.Getenv("MATHQUEST_DB_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("MATHQUEST_DB_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if cfg.Store.Driver != "sqlite" && cfg.Store.Driver != "postgres" {
		return Config{}, fmt.Errorf("invalid MATHQUEST_DB_DRIVER: %q", cfg.Store.Driver)
	}

	if err := cfg.LLM.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
