package probe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Crowley723/deploy-monitor/browser"
	"github.com/Crowley723/deploy-monitor/config"
)

// Database checks that the database service answers with a page, and inspects the
// anon key when one is configured.
type Database struct {
	URL       string
	Timeout   time.Duration
	AnonKey   string
	Inspector *KeyInspector
	Logger    *slog.Logger
	Now       func() time.Time
}

func NewDatabase(cfg *config.Config, logger *slog.Logger) *Database {
	return &Database{
		URL:     cfg.Targets.DatabaseURL,
		Timeout: cfg.Browser.DatabaseTimeoutDuration(),
		AnonKey: cfg.Database.AnonKey,
		Inspector: &KeyInspector{
			Secret:  cfg.Database.JWTSecret,
			JWKSURL: cfg.Database.JWKSURL,
		},
		Logger: logger,
	}
}

func (d *Database) Name() string { return "database" }

func (d *Database) Kind() Kind { return KindLive }

func (d *Database) Run(ctx context.Context, page browser.Page) DatabaseResult {
	d.Logger.Info("checking database service", "url", d.URL)

	result := d.reach(page)

	if d.AnonKey != "" && d.Inspector != nil {
		result.AnonKey = d.Inspector.Inspect(ctx, d.AnonKey)
		d.Logger.Info("anon key inspected",
			"role", result.AnonKey.Role,
			"expired", result.AnonKey.Expired,
			"verified", result.AnonKey.Verified,
			"error", result.AnonKey.Error)
	}

	return result
}

func (d *Database) reach(page browser.Page) DatabaseResult {
	err := page.Goto(d.URL, browser.NavigateOptions{
		WaitUntil: browser.WaitDOMContentLoaded,
		Timeout:   d.Timeout,
	})
	if err != nil {
		return d.failed(fmt.Errorf("navigation failed: %w", err))
	}

	content, err := page.Content()
	if err != nil {
		return d.failed(fmt.Errorf("failed to read content: %w", err))
	}

	reachable := Reachable(content)
	status := StatusReachable
	if !reachable {
		status = StatusUnreachable
	}

	d.Logger.Info("database check finished", "url", d.URL, "reachable", reachable)

	return DatabaseResult{
		URL:       d.URL,
		Reachable: reachable,
		Status:    status,
		Timestamp: nowFunc(d.Now),
	}
}

func (d *Database) failed(err error) DatabaseResult {
	d.Logger.Warn("database check failed", "url", d.URL, "error", err)

	return DatabaseResult{
		URL:       d.URL,
		Reachable: false,
		Status:    StatusError,
		Error:     err.Error(),
		Timestamp: nowFunc(d.Now),
	}
}

// Reachable reports whether loaded page content indicates a live service. Any
// non-empty content counts, so the keyword checks never change the outcome and a
// loaded blank page (serialized as an empty html document) is reachable.
func Reachable(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "supabase") || strings.Contains(lower, "rest") || len(content) > 0
}
