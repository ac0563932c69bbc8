package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is the browser, context and page triple used for one cycle.
type Session interface {
	Page() Page
	Close() error
}

// Launcher opens a fresh Session.
type Launcher interface {
	Open(ctx context.Context) (Session, error)
}

type Options struct {
	Headless       bool
	Args           []string
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string
}

type PlaywrightLauncher struct {
	options Options
	logger  *slog.Logger
}

func NewPlaywrightLauncher(options Options, logger *slog.Logger) *PlaywrightLauncher {
	return &PlaywrightLauncher{options: options, logger: logger}
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    *playwrightPage
	closed  bool
}

// Open starts the driver, launches Chromium and creates one context and one page.
// Anything created before a failure is released before returning.
func (l *PlaywrightLauncher) Open(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	s := &playwrightSession{}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	s.pw = pw

	s.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.options.Headless),
		Args:     l.options.Args,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to launch browser: %w", err), s.Close())
	}

	s.context, err = s.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  l.options.ViewportWidth,
			Height: l.options.ViewportHeight,
		},
		UserAgent: playwright.String(l.options.UserAgent),
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create browser context: %w", err), s.Close())
	}

	page, err := s.context.NewPage()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create page: %w", err), s.Close())
	}
	s.page = &playwrightPage{page: page}

	l.logger.Info("browser initialized",
		"headless", l.options.Headless,
		"viewport", fmt.Sprintf("%dx%d", l.options.ViewportWidth, l.options.ViewportHeight),
		"duration", time.Since(start))

	return s, nil
}

func (s *playwrightSession) Page() Page {
	if s.page == nil {
		return nil
	}
	return s.page
}

// Close releases page, context, browser and driver in that order, skipping any that
// were never created.
func (s *playwrightSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close page: %w", err))
		}
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close context: %w", err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}

	return errors.Join(errs...)
}
