package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var (
	envDatabaseURL = []string{"VITE_SUPABASE_URL", "SUPABASE_URL"}
	envAnonKey     = []string{"VITE_SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY"}
	envJWTSecret   = []string{"SUPABASE_JWT_SECRET", "JWT_SECRET"}
	envJWKSURL     = []string{"SUPABASE_JWKS_URL"}
)

// LoadCredentials fills the database credentials from the process environment and
// the configured env files. The process environment wins over the files, and
// earlier files win over later ones. Fields already set in cfg are kept; the
// database URL is only replaced while it still holds the default.
func LoadCredentials(cfg *Config) error {
	values := map[string]string{}

	for _, name := range cfg.Database.EnvFiles {
		path := ExpandPath(name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to stat env file %s: %w", path, err)
		}

		fileValues, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to parse env file %s: %w", path, err)
		}

		for k, v := range fileValues {
			if _, seen := values[k]; !seen {
				values[k] = v
			}
		}
	}

	get := func(keys []string) string {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				return v
			}
			if v := values[k]; v != "" {
				return v
			}
		}
		return ""
	}

	if v := get(envDatabaseURL); v != "" && cfg.Targets.DatabaseURL == DefaultDatabaseURL {
		cfg.Targets.DatabaseURL = v
	}
	if cfg.Database.AnonKey == "" {
		cfg.Database.AnonKey = get(envAnonKey)
	}
	if cfg.Database.JWTSecret == "" {
		cfg.Database.JWTSecret = get(envJWTSecret)
	}
	if cfg.Database.JWKSURL == "" {
		cfg.Database.JWKSURL = get(envJWKSURL)
	}

	return nil
}
