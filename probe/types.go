package probe

import (
	"context"
	"time"

	"github.com/Crowley723/deploy-monitor/browser"
)

// Kind tells whether a probe inspects its target or returns a placeholder.
type Kind string

const (
	KindLive    Kind = "live"
	KindStubbed Kind = "stubbed"
)

// Probe checks one external target using the cycle's shared page. Run never fails;
// problems are reported inside T.
type Probe[T any] interface {
	Name() string
	Kind() Kind
	Run(ctx context.Context, page browser.Page) T
}

// PlaceholderStatusCode is reported for every page that loaded, since navigation
// success is taken as the health signal.
const PlaceholderStatusCode = 200

const NotAvailable = "N/A"

type DeploymentResult struct {
	URL           string                   `json:"url"`
	FinalURL      string                   `json:"final_url,omitempty"`
	Title         string                   `json:"title,omitempty"`
	StatusCode    int                      `json:"status_code"`
	HasErrors     bool                     `json:"has_errors"`
	ConsoleErrors []browser.ConsoleMessage `json:"console_errors"`
	PageErrors    []string                 `json:"page_errors,omitempty"`
	Screenshot    string                   `json:"screenshot,omitempty"`
	Error         string                   `json:"error,omitempty"`
	Timestamp     time.Time                `json:"timestamp"`
}

type DatabaseResult struct {
	URL       string    `json:"url"`
	Reachable bool      `json:"reachable"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	AnonKey   *KeyInfo  `json:"anon_key,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	StatusReachable   = "reachable"
	StatusUnreachable = "unreachable"
	StatusError       = "error"
)

type VMStatus struct {
	IP        string    `json:"ip"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// LogFinding is one entry of the error-log analysis. Error is set instead of the
// other fields when the dashboard could not be loaded.
type LogFinding struct {
	Type         string `json:"type,omitempty"`
	Message      string `json:"message,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	FirstSeen    string `json:"first_seen,omitempty"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Results aggregates one cycle, keyed by check name.
type Results struct {
	CycleID    string           `json:"cycle_id"`
	Deployment DeploymentResult `json:"deployment"`
	Database   DatabaseResult   `json:"database"`
	VM         VMStatus         `json:"vm"`
	Errors     []LogFinding     `json:"errors"`
	Screenshot string           `json:"screenshot"`
}

func nowFunc(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
