package monitor

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Crowley723/deploy-monitor/browser"
	"github.com/Crowley723/deploy-monitor/config"
	"github.com/Crowley723/deploy-monitor/probe"
)

// Probes are the four checks of a cycle, run in field order.
type Probes struct {
	Deployment probe.Probe[probe.DeploymentResult]
	Database   probe.Probe[probe.DatabaseResult]
	VM         probe.Probe[probe.VMStatus]
	Logs       probe.Probe[[]probe.LogFinding]
}

// Cycle is the outcome of the most recent run, kept for the status server.
type Cycle struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Healthy    bool          `json:"healthy"`
	ReportPath string        `json:"report_path,omitempty"`
	Error      string        `json:"error,omitempty"`
	Results    probe.Results `json:"results"`
}

type Monitor struct {
	config   *config.Config
	logger   *slog.Logger
	launcher browser.Launcher
	probes   Probes
	host     string
	out      io.Writer
	now      func() time.Time
	wait     func(ctx context.Context, d time.Duration) error
	last     *Cycle
	mu       sync.RWMutex
}
