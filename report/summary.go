package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Crowley723/deploy-monitor/probe"
)

// PrintSummary writes the short per-cycle console summary.
func PrintSummary(w io.Writer, r probe.Results) {
	rule := strings.Repeat("=", 60)

	deployment := "OK"
	if r.Deployment.HasErrors {
		deployment = "ERRORS"
	}

	database := "OK"
	if !r.Database.Reachable {
		database = "UNREACHABLE"
	}

	vm := strings.ToUpper(r.VM.Status)
	if vm == "" {
		vm = "UNKNOWN"
	}

	fmt.Fprintf(w, "\n%s\nSUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(w, "Deployment: %s\n", deployment)
	fmt.Fprintf(w, "Database: %s\n", database)
	fmt.Fprintf(w, "VM: %s\n", vm)
	fmt.Fprintf(w, "Errors Found: %d\n", len(r.Errors))
}
