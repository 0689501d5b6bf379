package telemetry

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	clog "github.com/charmbracelet/log"
)

// Logger writes JSON lines to a file owned by the logger. The TUI holds the
// terminal, so an empty path discards everything.
type Logger struct {
	*clog.Logger

	mu sync.Mutex
	w  io.WriteCloser
}

func New(path string, debug bool) (*Logger, error) {
	var w io.WriteCloser = nopCloser{Writer: io.Discard}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	}
	level := clog.InfoLevel
	if debug {
		level = clog.DebugLevel
	}
	l := clog.NewWithOptions(w, clog.Options{
		Formatter:       clog.JSONFormatter,
		ReportTimestamp: true,
		Level:           level,
	})
	return &Logger{Logger: l, w: w}, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	l, _ := New("", false)
	return l
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return nil
	}
	err := l.w.Close()
	l.w = nil
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
