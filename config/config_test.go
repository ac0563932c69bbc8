package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("MissingFileUsesDefaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "monitor.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, 5*time.Minute, cfg.Monitor.Interval())
	})

	t.Run("EmptyPath", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("PartialFileKeepsDefaults", func(t *testing.T) {
		path := writeFile(t, "monitor.yaml", "project: billing\nmonitor:\n  polling_interval: 60s\n")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "billing", cfg.Project)
		assert.Equal(t, time.Minute, cfg.Monitor.Interval())
		assert.Equal(t, DefaultDatabaseURL, cfg.Targets.DatabaseURL)
		assert.Equal(t, 1920, cfg.Browser.ViewportWidth)
		assert.Equal(t, 30*time.Second, cfg.Browser.NavigationTimeoutDuration())
		assert.Equal(t, "https://billing.vercel.app", cfg.DeploymentURL())
	})

	t.Run("EmptyFileUsesDefaults", func(t *testing.T) {
		cfg, err := LoadConfig(writeFile(t, "monitor.yaml", ""))
		require.NoError(t, err)
		assert.Equal(t, DefaultProject, cfg.Project)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "monitor.yaml", "project: [unterminated"))
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "monitor.yaml", "browser:\n  navigation_timeout: never\n"))
		assert.ErrorContains(t, err, "browser.navigation_timeout")
	})
}

func TestReportPaths(t *testing.T) {
	r := ReportConfig{Path: "/tmp/out/report.md", ScreenshotDir: "/tmp/out"}
	ts := time.Date(2026, 1, 6, 10, 4, 5, 0, time.UTC)

	assert.Equal(t, "/tmp/out/report.md", r.ReportPath())
	assert.Equal(t, "/tmp/out/screenshot_20260106_100405.png", r.ScreenshotPath(ts))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".claude"), ExpandPath("~/.claude"))
	assert.Equal(t, "/etc/monitor", ExpandPath("/etc/monitor"))
	assert.Equal(t, "~user/x", ExpandPath("~user/x"))
}
