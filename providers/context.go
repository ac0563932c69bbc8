package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Crowley723/deploy-monitor/config"
	"github.com/Crowley723/deploy-monitor/monitor"
)

// CycleSource exposes the monitor state served over HTTP.
type CycleSource interface {
	LastCycle() *monitor.Cycle
	ReportPath() string
}

type AppContext struct {
	context.Context
	RequestID string
	Config    *config.Config
	Logger    *slog.Logger
	Cycles    CycleSource
	Request   *http.Request
	Response  http.ResponseWriter
}

type contextKey string

const RequestIDHeader = "X-Request-ID"

const appContextKey contextKey = "appContext"

type AppHandler func(*AppContext)

// AppContextMiddleware tags each request with an id, echoed in X-Request-ID, and
// injects a per-request AppContext.
func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			requestCtx := &AppContext{
				Context:   r.Context(),
				RequestID: id,
				Config:    baseCtx.Config,
				Logger:    baseCtx.Logger.With("request_id", id, "method", r.Method, "path", r.URL.Path),
				Cycles:    baseCtx.Cycles,
				Request:   r,
				Response:  w,
			}
			requestCtx.Logger.Debug("status request")
			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Wrap converts an AppHandler to http.HandlerFunc
func Wrap(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		handler(appCtx)
	}
}

func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, cycles CycleSource) *AppContext {
	return &AppContext{
		Context: ctx,
		Config:  cfg,
		Logger:  logger,
		Cycles:  cycles,
	}
}

// GetAppContext retrieves AppContext from request
func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}
	return nil
}

func (ctx *AppContext) WriteJSON(status int, data any) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to encode json", "error", err)
	}
}

func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"error": message,
	})
}

func (ctx *AppContext) WriteBytes(status int, contentType string, bytes []byte) {
	ctx.Response.Header().Set("Content-Type", contentType)
	ctx.Response.WriteHeader(status)
	if _, err := ctx.Response.Write(bytes); err != nil {
		ctx.Logger.Error("failed to write response", "error", err)
	}
}
