package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Crowley723/deploy-monitor/api"
	"github.com/Crowley723/deploy-monitor/browser"
	"github.com/Crowley723/deploy-monitor/config"
	"github.com/Crowley723/deploy-monitor/monitor"
	"github.com/Crowley723/deploy-monitor/providers"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	var (
		project     = flag.String("project", "", "project name (default from config, then "+config.DefaultProject+")")
		monitorMode = flag.Bool("monitor", false, "run continuously")
		interval    = flag.Int("interval", 0, "polling interval in seconds for -monitor (default from config)")
		analyzeLogs = flag.Bool("analyze-logs", false, "only analyze error logs")
		targetURL   = flag.String("url", "", "deployment URL to check")
		configPath  = flag.String("config", "monitor.yaml", "config file path")
		infraPath   = flag.String("infra", "", "infrastructure markdown file (default from config)")
		listen      = flag.String("listen", "", "address for the status server, e.g. :8090")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *infraPath, *project, *targetURL, *listen)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go handleShutdown(sigChan, cancel, logger)

	launcher := browser.NewPlaywrightLauncher(browser.Options{
		Headless:       cfg.Browser.Headless,
		Args:           cfg.Browser.Args,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		UserAgent:      cfg.Browser.UserAgent,
	}, logger)

	m := monitor.New(cfg, logger, launcher, monitor.DefaultProbes(cfg, logger))

	if cfg.Server.Listen != "" {
		appCtx := providers.NewAppContext(ctx, cfg, logger, m)
		go func() {
			if err := api.StartServer(appCtx); err != nil {
				logger.Error("status server failed", "error", err)
			}
		}()
	}

	switch {
	case *analyzeLogs:
		findings, err := m.AnalyzeLogs(ctx, cfg.DeploymentURL())
		if err != nil {
			logger.Error("log analysis failed", "error", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(findings); err != nil {
			logger.Error("failed to print findings", "error", err)
			os.Exit(1)
		}

	case *monitorMode:
		every := cfg.Monitor.Interval()
		if *interval > 0 {
			every = time.Duration(*interval) * time.Second
		}
		m.Start(ctx, every)

	default:
		if _, err := m.RunCycle(ctx); err != nil {
			logger.Error("monitor cycle failed", "error", err)
			os.Exit(1)
		}
	}
}

// handleShutdown cancels the root context on the first signal and restores default
// signal handling, so a second interrupt terminates the process.
func handleShutdown(sigChan chan os.Signal, cancel context.CancelFunc, logger *slog.Logger) {
	sig := <-sigChan
	signal.Stop(sigChan)
	logger.Info("received shutdown signal, interrupt again to exit immediately", "signal", sig.String())
	cancel()
}

// loadConfig layers the YAML file, the infrastructure file, credential env files and
// finally the command line flags.
func loadConfig(configPath, infraPath, project, targetURL, listen string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if project != "" {
		cfg.Project = project
	}
	if infraPath != "" {
		cfg.Report.InfrastructurePath = infraPath
	}

	infra, err := config.LoadInfrastructure(cfg.Report.InfrastructurePath)
	if err != nil {
		return nil, err
	}
	infra.Apply(cfg)

	if err := config.LoadCredentials(cfg); err != nil {
		return nil, err
	}

	if targetURL != "" {
		cfg.Targets.DeploymentURL = targetURL
	}
	if listen != "" {
		cfg.Server.Listen = listen
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// newLogger writes text logs to stderr, or JSON logs to the configured file.
func newLogger(cfg config.LoggingConfig) (*slog.Logger, func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}

	logFile, err := os.OpenFile(config.ExpandPath(cfg.Path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	closeLog := func() {
		if err := logFile.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to close log file:", err)
		}
	}

	return slog.New(slog.NewJSONHandler(logFile, opts)), closeLog, nil
}
