package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Crowley723/deploy-monitor/probe"
)

const timestampLayout = "2006-01-02 15:04:05"

// Meta is the report context that does not come from the probes.
type Meta struct {
	Project     string
	GeneratedAt time.Time
	Host        string
	VMIP        string
	SSHKey      string
	DatabaseURL string
}

// Healthy reports whether the cycle found no log errors.
func Healthy(r probe.Results) bool {
	return len(r.Errors) == 0
}

// Render builds the Markdown report. The output depends only on its arguments.
func Render(meta Meta, r probe.Results) string {
	var b strings.Builder

	status := "HEALTHY"
	if !Healthy(r) {
		status = "ERRORS DETECTED"
	}

	fmt.Fprintf(&b, "# MONITORING REPORT - Master Developer Loop\n")
	fmt.Fprintf(&b, "**Project:** %s\n", meta.Project)
	fmt.Fprintf(&b, "**Generated:** %s\n", meta.GeneratedAt.Format(timestampLayout))
	if meta.Host != "" {
		fmt.Fprintf(&b, "**Host:** %s\n", meta.Host)
	}
	fmt.Fprintf(&b, "**Status:** %s\n\n---\n\n", status)

	writeDeployment(&b, r.Deployment)
	writeDatabase(&b, r.Database)

	fmt.Fprintf(&b, "## VM Status\n")
	fmt.Fprintf(&b, "- **IP:** %s\n", orNA(r.VM.IP))
	fmt.Fprintf(&b, "- **Status:** %s\n\n---\n\n", orNA(r.VM.Status))

	fmt.Fprintf(&b, "## Screenshots\n")
	fmt.Fprintf(&b, "%s\n\n---\n\n", orDefault(r.Screenshot, "No screenshot available"))

	fmt.Fprintf(&b, "## Recommended Actions\n")
	for _, line := range Recommendations(r) {
		fmt.Fprintf(&b, "%s\n", line)
	}

	writeQuickFixes(&b, meta)

	return b.String()
}

func writeDeployment(b *strings.Builder, d probe.DeploymentResult) {
	url := d.FinalURL
	if url == "" {
		url = d.URL
	}

	fmt.Fprintf(b, "## Deployment\n")
	fmt.Fprintf(b, "- **URL:** %s\n", orNA(url))
	fmt.Fprintf(b, "- **Status Code:** %d\n", d.StatusCode)
	fmt.Fprintf(b, "- **Has Errors:** %t\n", d.HasErrors)
	fmt.Fprintf(b, "- **Title:** %s\n", orNA(d.Title))
	if d.Error != "" {
		fmt.Fprintf(b, "- **Error:** %s\n", d.Error)
	}

	fmt.Fprintf(b, "\n### Console Errors\n")
	if len(d.ConsoleErrors) == 0 {
		fmt.Fprintf(b, "None\n")
	}
	for _, msg := range d.ConsoleErrors {
		fmt.Fprintf(b, "- %s\n", msg.Text)
	}
	fmt.Fprintf(b, "\n---\n\n")
}

func writeDatabase(b *strings.Builder, d probe.DatabaseResult) {
	fmt.Fprintf(b, "## Database Health\n")
	fmt.Fprintf(b, "- **URL:** %s\n", orNA(d.URL))
	fmt.Fprintf(b, "- **Reachable:** %t\n", d.Reachable)
	fmt.Fprintf(b, "- **Status:** %s\n", orNA(d.Status))
	if d.Error != "" {
		fmt.Fprintf(b, "- **Error:** %s\n", d.Error)
	}

	if key := d.AnonKey; key != nil {
		fmt.Fprintf(b, "- **Anon Key Role:** %s\n", orNA(key.Role))
		if key.ExpiresAt != nil {
			fmt.Fprintf(b, "- **Anon Key Expires:** %s (expired: %t)\n", key.ExpiresAt.Format(timestampLayout), key.Expired)
		}
		if key.VerifiedBy != "" {
			fmt.Fprintf(b, "- **Anon Key Verified:** %t (%s)\n", key.Verified, key.VerifiedBy)
		}
		if key.KeyID != "" {
			fmt.Fprintf(b, "- **Anon Key ID:** %s\n", key.KeyID)
		}
		if key.Error != "" {
			fmt.Fprintf(b, "- **Anon Key Error:** %s\n", key.Error)
		}
	}
	fmt.Fprintf(b, "\n---\n\n")
}

func writeQuickFixes(b *strings.Builder, meta Meta) {
	fmt.Fprintf(b, "\n---\n\n## Quick Fixes\n")
	fmt.Fprintf(b, "```bash\n")
	fmt.Fprintf(b, "# Check VM status\n")
	fmt.Fprintf(b, "ssh -i %s ubuntu@%s \"docker ps\"\n\n", meta.SSHKey, meta.VMIP)
	fmt.Fprintf(b, "# Restart Supabase\n")
	fmt.Fprintf(b, "ssh -i %s ubuntu@%s \"cd ~/ngze-tech.stack && docker compose restart supabase\"\n\n", meta.SSHKey, meta.VMIP)
	fmt.Fprintf(b, "# Test Supabase connection\n")
	fmt.Fprintf(b, "curl -I %s\n", meta.DatabaseURL)
	fmt.Fprintf(b, "```\n")
}

// Recommendations returns the numbered action lines for the findings in r.
func Recommendations(r probe.Results) []string {
	var lines []string

	if r.Deployment.HasErrors {
		lines = append(lines,
			"1. Check Vercel logs for detailed error messages",
			"2. Review console errors above",
		)
	}

	if !r.Database.Reachable {
		lines = append(lines,
			"3. Verify Supabase instance is running",
			"4. Check network connectivity to Supabase",
			"5. Review CORS settings if self-hosted",
		)
	}

	if len(r.Errors) > 0 {
		lines = append(lines, "6. Review error logs and implement fixes")
	}

	return lines
}

// Write replaces the report at path, creating its directory when needed. The
// content goes to a temporary file in the same directory which is then renamed over
// path, so readers see either the old report or the new one.
func Write(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary report: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace report: %w", err)
	}

	return nil
}

func orNA(s string) string {
	return orDefault(s, probe.NotAvailable)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
