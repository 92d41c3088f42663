package telemetry

import (
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// NewLogger opens a structured JSON log at path. An empty path returns
// a logger that discards everything, so call sites never nil-check.
// The returned closer flushes the underlying file.
func NewLogger(path string) (*clog.Logger, func() error, error) {
	var (
		w        io.Writer = io.Discard
		closeLog           = func() error { return nil }
	)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeLog = f.Close
	}
	logger := clog.NewWithOptions(w, clog.Options{
		Formatter:       clog.JSONFormatter,
		ReportTimestamp: true,
		Level:           clog.InfoLevel,
	})
	return logger, closeLog, nil
}
