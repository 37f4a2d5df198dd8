// Package audit appends human-readable entries about every credential
// operation to a flat log file. The sink is strictly best-effort: a failed
// append must never fail or slow the operation being audited, so errors are
// logged and swallowed.
package audit

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// timestampLayout matches the log format consumers already parse:
// [2025-06-01T12:00:00.000Z] message
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Sink records one audit line per service outcome.
type Sink interface {
	Record(message string)
	Recordf(format string, args ...any)
}

// FileSink appends `[<ISO-8601 timestamp>] <message>` lines to a file.
type FileSink struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
}

var _ Sink = (*FileSink)(nil)

// NewFileSink returns a sink appending to path. The file is created on first
// write; construction never touches the disk.
func NewFileSink(path string, logger *slog.Logger) *FileSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSink{path: path, logger: logger}
}

// Record appends one timestamped line. Failures are logged, never returned.
func (s *FileSink) Record(message string) {
	line := fmt.Sprintf("[%s] %s\n", time.Now().UTC().Format(timestampLayout), message)

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Warn("audit: open log file failed", "path", s.path, "err", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		s.logger.Warn("audit: append failed", "path", s.path, "err", err)
	}
}

// Recordf is Record with fmt.Sprintf formatting.
func (s *FileSink) Recordf(format string, args ...any) {
	s.Record(fmt.Sprintf(format, args...))
}

// Nop discards everything. Useful in tests.
type Nop struct{}

var _ Sink = Nop{}

func (Nop) Record(string)          {}
func (Nop) Recordf(string, ...any) {}
