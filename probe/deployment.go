package probe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Crowley723/deploy-monitor/browser"
	"github.com/Crowley723/deploy-monitor/config"
)

// Deployment loads the deployed site, records browser errors and captures a
// full-page screenshot.
type Deployment struct {
	URL               string
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
	ScreenshotPath    func(time.Time) string
	Logger            *slog.Logger
	Now               func() time.Time
}

func NewDeployment(cfg *config.Config, logger *slog.Logger) *Deployment {
	return &Deployment{
		URL:               cfg.DeploymentURL(),
		NavigationTimeout: cfg.Browser.NavigationTimeoutDuration(),
		SettleDelay:       cfg.Browser.SettleDelayDuration(),
		ScreenshotPath:    cfg.Report.ScreenshotPath,
		Logger:            logger,
	}
}

func (d *Deployment) Name() string { return "deployment" }

func (d *Deployment) Kind() Kind { return KindLive }

func (d *Deployment) Run(ctx context.Context, page browser.Page) DeploymentResult {
	d.Logger.Info("checking deployment", "url", d.URL)

	captured, err := browser.NavigateAndCapture(page, d.URL, browser.NavigateOptions{
		WaitUntil: browser.WaitNetworkIdle,
		Timeout:   d.NavigationTimeout,
	}, d.SettleDelay)
	if err != nil {
		return d.failed(fmt.Errorf("navigation failed: %w", err))
	}

	now := nowFunc(d.Now)
	screenshot := d.ScreenshotPath(now)
	if err := page.Screenshot(screenshot, true); err != nil {
		return d.failed(fmt.Errorf("screenshot failed: %w", err))
	}

	title, err := page.Title()
	if err != nil {
		return d.failed(fmt.Errorf("failed to read title: %w", err))
	}

	consoleErrors := captured.Errors()
	for _, req := range captured.FailedRequests {
		consoleErrors = append(consoleErrors, browser.ConsoleMessage{
			Type: "error",
			Text: fmt.Sprintf("Request failed: %s - %s", req.URL, req.Reason),
		})
	}

	result := DeploymentResult{
		URL:           d.URL,
		FinalURL:      page.URL(),
		Title:         title,
		StatusCode:    PlaceholderStatusCode,
		HasErrors:     len(captured.PageErrors) > 0,
		ConsoleErrors: consoleErrors,
		PageErrors:    captured.PageErrors,
		Screenshot:    screenshot,
		Timestamp:     now,
	}

	d.Logger.Info("deployment check finished",
		"url", result.FinalURL,
		"title", result.Title,
		"has_errors", result.HasErrors,
		"console_errors", len(result.ConsoleErrors),
		"screenshot", result.Screenshot)

	return result
}

func (d *Deployment) failed(err error) DeploymentResult {
	d.Logger.Warn("deployment check failed", "url", d.URL, "error", err)

	return DeploymentResult{
		URL:        d.URL,
		StatusCode: 0,
		HasErrors:  true,
		Error:      err.Error(),
		Timestamp:  nowFunc(d.Now),
	}
}
