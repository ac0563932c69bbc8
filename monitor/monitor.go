package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Crowley723/deploy-monitor/browser"
	"github.com/Crowley723/deploy-monitor/config"
	"github.com/Crowley723/deploy-monitor/probe"
	"github.com/Crowley723/deploy-monitor/report"
	"github.com/Crowley723/deploy-monitor/utils"
)

var rule = strings.Repeat("=", 60)

// DefaultProbes builds the standard probe set from cfg.
func DefaultProbes(cfg *config.Config, logger *slog.Logger) Probes {
	return Probes{
		Deployment: probe.NewDeployment(cfg, logger),
		Database:   probe.NewDatabase(cfg, logger),
		VM:         probe.NewVM(cfg, logger),
		Logs:       probe.NewLogs(cfg, logger),
	}
}

func New(cfg *config.Config, logger *slog.Logger, launcher browser.Launcher, probes Probes) *Monitor {
	return &Monitor{
		config:   cfg,
		logger:   logger,
		launcher: launcher,
		probes:   probes,
		host:     utils.GetHostname(),
		out:      os.Stdout,
		now:      time.Now,
		wait:     sleep,
	}
}

// RunCycle opens a browser session, runs every probe in order, writes the report
// and closes the session. Only a failure to open the session or to write the
// report is returned; probe failures are part of the results.
func (m *Monitor) RunCycle(ctx context.Context) (probe.Results, error) {
	cycle := &Cycle{ID: uuid.NewString(), StartedAt: m.now()}
	logger := m.logger.With("cycle", cycle.ID)

	fmt.Fprintf(m.out, "\nStarting monitor for: %s\n%s\n", m.config.Project, rule)
	logger.Info("starting cycle", "project", m.config.Project)

	session, err := m.launcher.Open(ctx)
	if err != nil {
		logger.Error("browser init failed", "error", err)
		fmt.Fprintf(m.out, "Browser init failed: %v\n", err)
		m.finish(cycle, fmt.Errorf("failed to open browser session: %w", err))
		return probe.Results{}, fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close browser session", "error", err)
			return
		}
		logger.Debug("browser closed")
	}()

	page := session.Page()
	results := probe.Results{CycleID: cycle.ID}

	results.Deployment = m.probes.Deployment.Run(ctx, page)
	results.Database = m.probes.Database.Run(ctx, page)
	results.VM = m.probes.VM.Run(ctx, page)
	results.Errors = m.probes.Logs.Run(ctx, page)

	results.Screenshot = results.Deployment.Screenshot
	if results.Screenshot == "" {
		results.Screenshot = probe.NotAvailable
	}
	cycle.Results = results

	content := report.Render(report.Meta{
		Project:     m.config.Project,
		GeneratedAt: m.now(),
		Host:        m.host,
		VMIP:        m.config.Targets.VMIP,
		SSHKey:      m.config.Targets.SSHKey,
		DatabaseURL: m.config.Targets.DatabaseURL,
	}, results)

	path := m.config.Report.ReportPath()
	if err := report.Write(path, content); err != nil {
		logger.Error("failed to save report", "path", path, "error", err)
		m.finish(cycle, err)
		return results, err
	}
	cycle.ReportPath = path

	logger.Info("report saved",
		"path", path,
		"healthy", report.Healthy(results),
		"deployment_errors", results.Deployment.HasErrors,
		"database_reachable", results.Database.Reachable,
		"findings", len(results.Errors))
	fmt.Fprintf(m.out, "\nReport saved to: %s\n", path)
	report.PrintSummary(m.out, results)

	m.finish(cycle, nil)
	return results, nil
}

func (m *Monitor) finish(cycle *Cycle, err error) {
	cycle.FinishedAt = m.now()
	cycle.Healthy = err == nil && report.Healthy(cycle.Results)
	if err != nil {
		cycle.Error = err.Error()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = cycle
}

// Start runs a cycle, then sleeps interval, until ctx is cancelled. A cycle in
// progress is always completed; cancellation takes effect before the next sleep
// or during it.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	m.logger.Info("starting monitor loop", "interval", interval)
	fmt.Fprintf(m.out, "Continuous monitoring every %s...\nPress Ctrl+C to stop\n", interval)

	for {
		if _, err := m.RunCycle(context.WithoutCancel(ctx)); err != nil {
			m.logger.Error("monitor cycle failed", "error", err)
		}

		if ctx.Err() != nil {
			break
		}

		fmt.Fprintf(m.out, "\nWaiting %s until next check...\n", interval)
		if err := m.wait(ctx, interval); err != nil {
			break
		}
	}

	m.logger.Info("monitor loop stopped")
	fmt.Fprintf(m.out, "\nMonitoring stopped by user\n")
}

// AnalyzeLogs runs only the error-log analysis for target in its own session.
func (m *Monitor) AnalyzeLogs(ctx context.Context, target string) ([]probe.LogFinding, error) {
	m.logger.Info("analyzing error logs", "target", target)

	session, err := m.launcher.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			m.logger.Warn("failed to close browser session", "error", err)
		}
	}()

	return m.probes.Logs.Run(ctx, session.Page()), nil
}

// LastCycle returns a copy of the most recent cycle, or nil before the first one.
func (m *Monitor) LastCycle() *Cycle {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.last == nil {
		return nil
	}
	c := *m.last
	return &c
}

// ReportPath is where every cycle writes its report.
func (m *Monitor) ReportPath() string {
	return m.config.Report.ReportPath()
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
