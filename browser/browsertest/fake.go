// Package browsertest provides in-memory browser fakes for tests.
package browsertest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Crowley723/deploy-monitor/browser"
)

// Visit describes what the fake page does when a URL is loaded.
type Visit struct {
	Title          string
	FinalURL       string
	Content        string
	Err            error
	Panic          any
	Console        []browser.ConsoleMessage
	PageErrors     []error
	FailedRequests []browser.FailedRequest
}

// Page is a scripted browser.Page. Events of a visit are emitted to the listeners
// registered at the time Goto is called.
type Page struct {
	mu      sync.Mutex
	Visits  map[string]Visit
	current Visit
	url     string

	Navigations []string
	Options     []browser.NavigateOptions
	Screenshots []string
	Waited      time.Duration
	Closed      int

	ScreenshotErr error

	nextID          int
	consoleFns      map[int]func(browser.ConsoleMessage)
	pageErrorFns    map[int]func(error)
	requestFailedFn map[int]func(browser.FailedRequest)
}

func NewPage(visits map[string]Visit) *Page {
	return &Page{
		Visits:          visits,
		consoleFns:      map[int]func(browser.ConsoleMessage){},
		pageErrorFns:    map[int]func(error){},
		requestFailedFn: map[int]func(browser.FailedRequest){},
	}
}

func (p *Page) Goto(url string, opts browser.NavigateOptions) error {
	p.mu.Lock()
	p.Navigations = append(p.Navigations, url)
	p.Options = append(p.Options, opts)
	visit, ok := p.Visits[url]
	if !ok {
		visit = Visit{Err: errors.New("net::ERR_NAME_NOT_RESOLVED at " + url)}
	}
	consoleFns := copyFns(p.consoleFns)
	pageErrorFns := copyFns(p.pageErrorFns)
	requestFailedFns := copyFns(p.requestFailedFn)
	p.mu.Unlock()

	if visit.Panic != nil {
		panic(visit.Panic)
	}

	for _, msg := range visit.Console {
		for _, fn := range consoleFns {
			fn(msg)
		}
	}
	for _, err := range visit.PageErrors {
		for _, fn := range pageErrorFns {
			fn(err)
		}
	}
	for _, req := range visit.FailedRequests {
		for _, fn := range requestFailedFns {
			fn(req)
		}
	}

	if visit.Err != nil {
		return visit.Err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = visit
	p.url = url
	if visit.FinalURL != "" {
		p.url = visit.FinalURL
	}
	return nil
}

func copyFns[T any](in map[int]T) []T {
	out := make([]T, 0, len(in))
	for _, fn := range in {
		out = append(out, fn)
	}
	return out
}

func (p *Page) Title() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.Title, nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) Content() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.Content, nil
}

// Screenshot records the path and writes a placeholder file so callers can stat it.
func (p *Page) Screenshot(path string, fullPage bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ScreenshotErr != nil {
		return p.ScreenshotErr
	}
	p.Screenshots = append(p.Screenshots, path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("\x89PNG"), 0644)
}

func (p *Page) Wait(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Waited += d
}

func (p *Page) OnConsole(fn func(browser.ConsoleMessage)) func() {
	return register(p, p.consoleFns, fn)
}

func (p *Page) OnPageError(fn func(error)) func() {
	return register(p, p.pageErrorFns, fn)
}

func (p *Page) OnRequestFailed(fn func(browser.FailedRequest)) func() {
	return register(p, p.requestFailedFn, fn)
}

func register[T any](p *Page, fns map[int]T, fn T) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	fns[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(fns, id)
	}
}

// Listeners returns the number of currently registered listeners.
func (p *Page) Listeners() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.consoleFns) + len(p.pageErrorFns) + len(p.requestFailedFn)
}

func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed++
	return nil
}

// Session wraps a Page and counts Close calls.
type Session struct {
	page   *Page
	mu     sync.Mutex
	closes int
}

func (s *Session) Page() browser.Page {
	return s.page
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return s.page.Close()
}

// Closes returns how many times Close was called.
func (s *Session) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// Launcher hands out Sessions over the same scripted page.
type Launcher struct {
	Page *Page
	Err  error

	mu       sync.Mutex
	Sessions []*Session
}

func (l *Launcher) Open(ctx context.Context) (browser.Session, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	s := &Session{page: l.Page}
	l.mu.Lock()
	l.Sessions = append(l.Sessions, s)
	l.mu.Unlock()
	return s, nil
}

// Opened returns how many sessions were opened.
func (l *Launcher) Opened() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Sessions)
}
