package browser

import (
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

type playwrightPage struct {
	page playwright.Page
}

func waitUntilState(w WaitUntil) *playwright.WaitUntilState {
	switch w {
	case WaitDOMContentLoaded:
		return playwright.WaitUntilStateDomcontentloaded
	case WaitNetworkIdle:
		return playwright.WaitUntilStateNetworkidle
	default:
		return playwright.WaitUntilStateLoad
	}
}

func (p *playwrightPage) Goto(url string, opts NavigateOptions) error {
	options := playwright.PageGotoOptions{
		WaitUntil: waitUntilState(opts.WaitUntil),
	}
	if opts.Timeout > 0 {
		options.Timeout = playwright.Float(float64(opts.Timeout.Milliseconds()))
	}

	_, err := p.page.Goto(url, options)
	return err
}

func (p *playwrightPage) Title() (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Content() (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) Screenshot(path string, fullPage bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(fullPage),
	})
	return err
}

func (p *playwrightPage) Wait(d time.Duration) {
	p.page.WaitForTimeout(float64(d.Milliseconds()))
}

// RemoveListener matches handlers by code pointer, so all closures built here are
// removed together. Only one Capture may be active on a page at a time.
func (p *playwrightPage) OnConsole(fn func(ConsoleMessage)) func() {
	handler := func(msg playwright.ConsoleMessage) {
		fn(ConsoleMessage{Type: msg.Type(), Text: msg.Text()})
	}
	p.page.On("console", handler)
	return func() { p.page.RemoveListener("console", handler) }
}

func (p *playwrightPage) OnPageError(fn func(error)) func() {
	handler := func(err error) {
		fn(err)
	}
	p.page.On("pageerror", handler)
	return func() { p.page.RemoveListener("pageerror", handler) }
}

func (p *playwrightPage) OnRequestFailed(fn func(FailedRequest)) func() {
	handler := func(req playwright.Request) {
		failed := FailedRequest{URL: req.URL()}
		if err := req.Failure(); err != nil {
			failed.Reason = err.Error()
		}
		fn(failed)
	}
	p.page.On("requestfailed", handler)
	return func() { p.page.RemoveListener("requestfailed", handler) }
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}
