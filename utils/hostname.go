package utils

import (
	"log/slog"
	"os"
)

// GetHostname returns $HOSTNAME, the kernel hostname, or "unknown".
func GetHostname() string {
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		return hostname
	}

	hostname, err := os.Hostname()
	if err != nil {
		slog.Warn("failed to resolve hostname", "err", err)
		return "unknown"
	}

	return hostname
}
