package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns a configuration populated with every documented default.
func Default() *Config {
	cfg := &Config{
		Project:  DefaultProject,
		Targets:  DefaultTargetsConfig,
		Browser:  DefaultBrowserConfig,
		Monitor:  DefaultMonitorConfig,
		Report:   DefaultReportConfig,
		Database: DefaultDatabaseConfig,
		Logging:  DefaultLoggingConfig,
	}
	cfg.Browser.Args = append([]string(nil), DefaultBrowserConfig.Args...)
	cfg.Database.EnvFiles = append([]string(nil), DefaultDatabaseConfig.EnvFiles...)
	return cfg
}

// LoadConfig reads the YAML config at path. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required (use -config)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// an empty document never reaches UnmarshalYAML
	if config.Project == "" && config.Report.Path == "" {
		config = *Default()
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) UnmarshalYAML(unmarshall func(interface{}) error) error {
	type raw Config
	r := raw(*Default())

	if err := unmarshall(&r); err != nil {
		return err
	}

	*c = Config(r)

	return nil
}
