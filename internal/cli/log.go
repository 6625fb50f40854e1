// Package cli implements the templatedesigner command-line interface.
//
// This package provides commands that create and edit templates held in a
// store, export them as HTML (or JSON, YAML, DOT and SVG), serve the HTTP
// API, and manage the export cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - new, list, show, delete, rename, canvas: whole-template operations
//   - section, component: structural edits addressed by id and position
//   - export: write artifacts, optionally re-exporting on every save (--watch)
//   - edit: interactive terminal editor
//   - serve: run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/Pratikmalviya12/template-designer/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps read like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a command and its stages. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// step logs a finished stage at debug level with the time it took.
func (p *progress) step(stage string, kv ...any) {
	now := time.Now()
	p.logger.Debug(stage, append(kv, "took", now.Sub(p.last).Round(time.Microsecond))...)
	p.last = now
}

// done logs msg with the total elapsed time, e.g. "Exported 3 artifacts (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by Execute, or log.Default()
// for commands run without one (tests build commands directly).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
