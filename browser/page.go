package browser

import (
	"time"
)

// WaitUntil is the navigation completion condition.
type WaitUntil string

const (
	WaitLoad             WaitUntil = "load"
	WaitDOMContentLoaded WaitUntil = "domcontentloaded"
	WaitNetworkIdle      WaitUntil = "networkidle"
)

type NavigateOptions struct {
	WaitUntil WaitUntil
	Timeout   time.Duration
}

type ConsoleMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type FailedRequest struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// Page is the subset of a browser tab the probes drive. Every On* method returns a
// function that removes the listener it registered.
type Page interface {
	Goto(url string, opts NavigateOptions) error
	Title() (string, error)
	URL() string
	Content() (string, error)
	Screenshot(path string, fullPage bool) error
	Wait(d time.Duration)
	OnConsole(fn func(ConsoleMessage)) (remove func())
	OnPageError(fn func(error)) (remove func())
	OnRequestFailed(fn func(FailedRequest)) (remove func())
	Close() error
}
