package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DeploymentURL returns the configured deployment URL, or the project's default
// Vercel address when none is set.
func (c *Config) DeploymentURL() string {
	if c.Targets.DeploymentURL != "" {
		return c.Targets.DeploymentURL
	}
	return fmt.Sprintf("https://%s.vercel.app", c.Project)
}

// Interval returns the parsed polling interval.
func (m *MonitorConfig) Interval() time.Duration {
	d, _ := time.ParseDuration(m.PollingInterval)
	return d
}

func (b *BrowserConfig) NavigationTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(b.NavigationTimeout)
	return d
}

func (b *BrowserConfig) DatabaseTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(b.DatabaseTimeout)
	return d
}

func (b *BrowserConfig) SettleDelayDuration() time.Duration {
	d, _ := time.ParseDuration(b.SettleDelay)
	return d
}

// ReportPath returns the expanded path of the Markdown report.
func (r *ReportConfig) ReportPath() string {
	return ExpandPath(r.Path)
}

// ScreenshotPath returns the screenshot file for a capture taken at ts.
func (r *ReportConfig) ScreenshotPath(ts time.Time) string {
	name := ConstScreenshotPrefix + ts.Format(ConstScreenshotTimeLayout) + ".png"
	return filepath.Join(ExpandPath(r.ScreenshotDir), name)
}

// ExpandPath replaces a leading "~" with the current user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SlogLevel parses the configured log level. An empty level means info.
func (l *LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid logging.level %q: %w", l.Level, err)
	}
	return level, nil
}
