// Package cli implements the curricula command-line interface.
//
// The commands read curriculum instances from TOML or JSON files, run them
// through the schedule pipeline and print the results as tables. The CLI is
// built using cobra and logs with charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - bounds: Earliest and latest period of every course
//   - solve: Find a schedule, optionally balancing credit load
//   - render: Draw the prerequisite graph as DOT, SVG or JSON
//   - schedules: List, show and delete stored schedules
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
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

// done logs msg along with the elapsed time since progress was created.
// Example output: "Solved 42 courses (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
