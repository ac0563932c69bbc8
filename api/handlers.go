package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/Crowley723/deploy-monitor/probe"
	"github.com/Crowley723/deploy-monitor/providers"
)

// handleHealthGET returns the outcome of the most recent cycle. Until the first
// cycle finishes it answers 503 with status "pending".
func handleHealthGET(ctx *providers.AppContext) {
	resp := HealthResponse{Project: ctx.Config.Project, Status: statusPending}

	cycle := ctx.Cycles.LastCycle()
	if cycle == nil {
		ctx.WriteJSON(http.StatusServiceUnavailable, resp)
		return
	}

	resp.Cycle = cycle
	resp.Status = statusErrors
	if cycle.Healthy {
		resp.Status = statusHealthy
	}
	ctx.WriteJSON(http.StatusOK, resp)
}

// handleReportGET returns the Markdown report written by the last cycle.
func handleReportGET(ctx *providers.AppContext) {
	serveFile(ctx, ctx.Cycles.ReportPath(), "text/markdown; charset=utf-8", "report")
}

// handleScreenshotGET returns the deployment screenshot of the last cycle.
func handleScreenshotGET(ctx *providers.AppContext) {
	cycle := ctx.Cycles.LastCycle()
	if cycle == nil || cycle.Results.Screenshot == "" || cycle.Results.Screenshot == probe.NotAvailable {
		ctx.SetJSONError(http.StatusNotFound, "no screenshot available")
		return
	}

	serveFile(ctx, cycle.Results.Screenshot, "image/png", "screenshot")
}

func serveFile(ctx *providers.AppContext, path, contentType, what string) {
	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		ctx.SetJSONError(http.StatusNotFound, "no "+what+" available")
		return
	}
	if err != nil {
		ctx.Logger.Error("failed to read "+what, "path", path, "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.Response.Header().Set("Cache-Control", "no-store")
	ctx.WriteBytes(http.StatusOK, contentType, bytes)
}
