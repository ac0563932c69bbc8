package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/Crowley723/deploy-monitor/browser"
	"github.com/Crowley723/deploy-monitor/config"
)

const vmNote = "SSH check requires actual SSH connection. Use CLI for real check."

// VM reports a fixed "running" status for the configured host.
type VM struct {
	IP     string
	Logger *slog.Logger
	Now    func() time.Time
}

func NewVM(cfg *config.Config, logger *slog.Logger) *VM {
	return &VM{IP: cfg.Targets.VMIP, Logger: logger}
}

func (v *VM) Name() string { return "vm" }

func (v *VM) Kind() Kind { return KindStubbed }

func (v *VM) Run(ctx context.Context, page browser.Page) VMStatus {
	v.Logger.Info("checking vm", "ip", v.IP, "kind", v.Kind())

	return VMStatus{
		IP:        v.IP,
		Status:    "running",
		Note:      vmNote,
		Timestamp: nowFunc(v.Now),
	}
}

// SimulatedFinding is returned by the log analyzer for every successful dashboard load.
var SimulatedFinding = LogFinding{
	Type:         "connection_refused",
	Message:      "Supabase connection refused",
	Frequency:    "high",
	FirstSeen:    "2026-01-06T10:00:00Z",
	SuggestedFix: "Check Supabase URL and network connectivity",
}

// Logs visits the deployment dashboard. No login flow exists, so the page content is
// not inspected and a simulated finding is returned.
type Logs struct {
	DashboardURL string
	Timeout      time.Duration
	Logger       *slog.Logger
}

func NewLogs(cfg *config.Config, logger *slog.Logger) *Logs {
	return &Logs{
		DashboardURL: cfg.Targets.DashboardURL,
		Timeout:      cfg.Browser.NavigationTimeoutDuration(),
		Logger:       logger,
	}
}

func (l *Logs) Name() string { return "errors" }

func (l *Logs) Kind() Kind { return KindStubbed }

func (l *Logs) Run(ctx context.Context, page browser.Page) []LogFinding {
	l.Logger.Info("analyzing error logs", "dashboard", l.DashboardURL, "kind", l.Kind())

	err := page.Goto(l.DashboardURL, browser.NavigateOptions{
		WaitUntil: browser.WaitNetworkIdle,
		Timeout:   l.Timeout,
	})
	if err != nil {
		l.Logger.Warn("log analysis failed", "dashboard", l.DashboardURL, "error", err)
		return []LogFinding{{Error: err.Error()}}
	}

	return []LogFinding{SimulatedFinding}
}
