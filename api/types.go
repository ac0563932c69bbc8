package api

import (
	"github.com/Crowley723/deploy-monitor/monitor"
)

const (
	statusPending = "pending"
	statusHealthy = "healthy"
	statusErrors  = "errors_detected"
)

type HealthResponse struct {
	Status  string         `json:"status"`
	Project string         `json:"project"`
	Cycle   *monitor.Cycle `json:"cycle,omitempty"`
}
