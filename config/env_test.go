package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentialEnv(t *testing.T) {
	for _, keys := range [][]string{envDatabaseURL, envAnonKey, envJWTSecret, envJWKSURL} {
		for _, k := range keys {
			t.Setenv(k, "")
		}
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Run("ReadsEnvFiles", func(t *testing.T) {
		clearCredentialEnv(t)
		dir := t.TempDir()
		local := writeFile(t, ".env.local", "VITE_SUPABASE_URL=https://ref.supabase.co\nVITE_SUPABASE_ANON_KEY=local-key\n")
		fallback := writeFile(t, ".env", "VITE_SUPABASE_ANON_KEY=fallback-key\nSUPABASE_JWT_SECRET=secret\n")

		cfg := Default()
		cfg.Database.EnvFiles = []string{local, filepath.Join(dir, "missing.env"), fallback}

		require.NoError(t, LoadCredentials(cfg))
		assert.Equal(t, "https://ref.supabase.co", cfg.Targets.DatabaseURL)
		assert.Equal(t, "local-key", cfg.Database.AnonKey)
		assert.Equal(t, "secret", cfg.Database.JWTSecret)
		assert.Empty(t, cfg.Database.JWKSURL)
	})

	t.Run("KeyOrderThenProcessEnv", func(t *testing.T) {
		clearCredentialEnv(t)
		t.Setenv("SUPABASE_ANON_KEY", "env-key")

		cfg := Default()
		cfg.Database.EnvFiles = []string{writeFile(t, ".env", "VITE_SUPABASE_ANON_KEY=file-key\n")}

		require.NoError(t, LoadCredentials(cfg))
		assert.Equal(t, "file-key", cfg.Database.AnonKey)

		t.Setenv("VITE_SUPABASE_ANON_KEY", "vite-env-key")
		cfg.Database.AnonKey = ""
		require.NoError(t, LoadCredentials(cfg))
		assert.Equal(t, "vite-env-key", cfg.Database.AnonKey)
	})

	t.Run("ConfiguredValuesKept", func(t *testing.T) {
		clearCredentialEnv(t)
		t.Setenv("VITE_SUPABASE_URL", "https://other.supabase.co")

		cfg := Default()
		cfg.Targets.DatabaseURL = "https://db.example.com"
		cfg.Database.AnonKey = "configured"
		cfg.Database.EnvFiles = nil

		require.NoError(t, LoadCredentials(cfg))
		assert.Equal(t, "https://db.example.com", cfg.Targets.DatabaseURL)
		assert.Equal(t, "configured", cfg.Database.AnonKey)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		clearCredentialEnv(t)
		cfg := Default()
		cfg.Database.EnvFiles = []string{writeFile(t, ".env", "KEY='unterminated\n")}
		assert.Error(t, LoadCredentials(cfg))
	})
}
