// Package logging builds the charmbracelet logger shared by the CLI,
// the provider and the host dispatcher.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// prefix returns the styled "pelisplus" badge printed before each line.
func prefix() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#D9480F")).
		Bold(true).
		Padding(0, 1).
		MarginRight(1)
	return style.Render("pelisplus")
}

// New creates a logger writing to stderr. Debug mode lowers the level and
// reports caller and timestamp.
func New(debug bool) *log.Logger {
	return NewWithWriter(os.Stderr, debug)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: debug,
		TimeFormat:      "15:04:05",
		Prefix:          prefix(),
	})

	if debug {
		logger.SetLevel(log.DebugLevel)
		logger.SetColorProfile(termenv.TrueColor)
		logger.Debug("debug logging enabled")
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// Discard returns a logger that drops everything. Used as the default when
// a caller does not supply one.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
