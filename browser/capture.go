package browser

import (
	"sync"
	"time"
)

// Captured holds the events observed on a page while a single check was running.
type Captured struct {
	Console        []ConsoleMessage
	PageErrors     []string
	FailedRequests []FailedRequest
}

// Errors returns the console messages of severity "error".
func (c Captured) Errors() []ConsoleMessage {
	var out []ConsoleMessage
	for _, msg := range c.Console {
		if msg.Type == "error" {
			out = append(out, msg)
		}
	}
	return out
}

// Capture records page events between Watch and Stop. Listeners are registered on
// the page only for that window.
type Capture struct {
	mu       sync.Mutex
	captured Captured
	removers []func()
}

// Watch registers console, page error and failed request listeners on page.
func Watch(page Page) *Capture {
	c := &Capture{}

	c.removers = append(c.removers,
		page.OnConsole(func(msg ConsoleMessage) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.captured.Console = append(c.captured.Console, msg)
		}),
		page.OnPageError(func(err error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.captured.PageErrors = append(c.captured.PageErrors, err.Error())
		}),
		page.OnRequestFailed(func(req FailedRequest) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.captured.FailedRequests = append(c.captured.FailedRequests, req)
		}),
	)

	return c
}

// Stop deregisters the listeners and returns what was observed. Calling Stop more
// than once returns the same events.
func (c *Capture) Stop() Captured {
	c.mu.Lock()
	removers := c.removers
	c.removers = nil
	c.mu.Unlock()

	for _, remove := range removers {
		if remove != nil {
			remove()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.captured
}

// NavigateAndCapture loads url on page with listeners scoped to this call, then
// waits settle before stopping the capture. The capture is returned even when the
// navigation fails.
func NavigateAndCapture(page Page, url string, opts NavigateOptions, settle time.Duration) (Captured, error) {
	capture := Watch(page)
	defer capture.Stop()

	if err := page.Goto(url, opts); err != nil {
		return capture.Stop(), err
	}

	if settle > 0 {
		page.Wait(settle)
	}

	return capture.Stop(), nil
}
