package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	// isolate from credential files and variables on the host
	t.Chdir(t.TempDir())
	for _, k := range []string{"VITE_SUPABASE_URL", "SUPABASE_URL"} {
		t.Setenv(k, "")
	}

	yamlTargets := "targets:\n" +
		"  deployment_url: https://staging.example.com\n" +
		"  database_url: https://db.example.com\n" +
		"  vm_ip: 10.9.9.9\n"

	t.Run("YAMLTargetsSurviveMissingInfraFile", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "GLOBAL_INFRASTRUCTURE.md")

		cfg, err := loadConfig(writeConfig(t, yamlTargets), missing, "", "", "")
		require.NoError(t, err)

		assert.Equal(t, "https://staging.example.com", cfg.DeploymentURL())
		assert.Equal(t, "https://db.example.com", cfg.Targets.DatabaseURL)
		assert.Equal(t, "10.9.9.9", cfg.Targets.VMIP)
	})

	t.Run("InfraFileOverridesYAML", func(t *testing.T) {
		infra := filepath.Join(t.TempDir(), "GLOBAL_INFRASTRUCTURE.md")
		require.NoError(t, os.WriteFile(infra, []byte("- **VM IP:** 10.1.1.1\n"), 0644))

		cfg, err := loadConfig(writeConfig(t, yamlTargets), infra, "", "", "")
		require.NoError(t, err)

		assert.Equal(t, "10.1.1.1", cfg.Targets.VMIP)
		assert.Equal(t, "https://db.example.com", cfg.Targets.DatabaseURL)
	})

	t.Run("FlagsWin", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.md")

		cfg, err := loadConfig(writeConfig(t, yamlTargets), missing, "other-project", "https://flag.example.com", ":8090")
		require.NoError(t, err)

		assert.Equal(t, "other-project", cfg.Project)
		assert.Equal(t, "https://flag.example.com", cfg.DeploymentURL())
		assert.Equal(t, ":8090", cfg.Server.Listen)
	})

	t.Run("InvalidURLFlag", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.md")

		_, err := loadConfig(writeConfig(t, yamlTargets), missing, "", "not-a-url", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "targets.deployment_url")
	})
}

func TestHandleShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})
	go func() {
		handleShutdown(sigChan, cancel, slog.New(slog.DiscardHandler))
		close(done)
	}()

	sigChan <- os.Interrupt

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown handler did not return")
	}
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
