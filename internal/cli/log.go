// Package cli implements the sentree command-line interface.
//
// The commands read annotation documents (JSON or TOML, chosen by file
// extension), run them through the editor in pkg/history and print or write
// the result. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - validate: Check a document's structural invariants
//   - show: Print the layer tree of a document
//   - convert: Rewrite a document between JSON and TOML
//   - move: Move a layer to a new position and rewrite the document
//   - store: Put, get and delete documents in the file or redis store
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level along with the elapsed time, e.g.
// "Converted doc.json (3ms)".
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
