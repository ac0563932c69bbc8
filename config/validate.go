package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

type Validator interface {
	validateMonitorConfig() error
	validateBrowserConfig() error
	validateTargetsConfig() error
}

func validateConfig(config Validator) error {
	return errors.Join(
		config.validateMonitorConfig(),
		config.validateBrowserConfig(),
		config.validateTargetsConfig(),
	)
}

// Validate checks a config assembled outside LoadConfig, e.g. after CLI overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

func (c *Config) validateMonitorConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	if c.Project == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "project")
	}

	if c.Monitor.PollingInterval == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "monitor.polling_interval")
	}

	if err := positiveDuration("monitor.polling_interval", c.Monitor.PollingInterval); err != nil {
		return err
	}

	if c.Report.Path == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "report.path")
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateBrowserConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		return errors.New("browser viewport dimensions must be positive")
	}

	if err := positiveDuration("browser.navigation_timeout", c.Browser.NavigationTimeout); err != nil {
		return err
	}

	if err := positiveDuration("browser.database_timeout", c.Browser.DatabaseTimeout); err != nil {
		return err
	}

	// a zero settle delay is allowed
	if d, err := time.ParseDuration(c.Browser.SettleDelay); err != nil || d < 0 {
		return fmt.Errorf(fmtErrInvalidDuration, "browser.settle_delay", c.Browser.SettleDelay)
	}

	return nil
}

func (c *Config) validateTargetsConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	if c.Targets.DatabaseURL == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "targets.database_url")
	}

	if c.Targets.DashboardURL == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "targets.dashboard_url")
	}

	urls := []struct {
		field string
		raw   string
	}{
		{"targets.deployment_url", c.DeploymentURL()},
		{"targets.database_url", c.Targets.DatabaseURL},
		{"targets.dashboard_url", c.Targets.DashboardURL},
	}

	for _, target := range urls {
		u, err := url.Parse(target.raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config field '%s' must be an absolute URL, got %q", target.field, target.raw)
		}
	}

	return nil
}

func positiveDuration(field, raw string) error {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fmt.Errorf(fmtErrInvalidDuration, field, raw)
	}
	return nil
}
