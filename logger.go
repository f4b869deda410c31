package atelier

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/atelier/internal/parallel"
	"github.com/gogpu/atelier/internal/silhouette"
	"github.com/gogpu/atelier/internal/texture"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for atelier and all its sub-packages.
// By default, atelier produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by atelier:
//   - [slog.LevelDebug]: stage diagnostics (thresholds, contour sizes, pool lifecycle)
//   - [slog.LevelWarn]: fallbacks (auto threshold failed, unknown texture pattern)
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	atelier.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	parallel.SetLogger(l)
	silhouette.SetLogger(l)
	texture.SetLogger(l)
}

// Logger returns the current logger used by atelier.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
