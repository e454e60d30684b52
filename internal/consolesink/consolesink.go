// Package consolesink implements the Console Sink (C5): a per-evaluation
// capture buffer for console.* output, forwarded to the host logger at
// debug severity.
package consolesink

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Sink accumulates one evaluation's console output. A fresh Sink replaces
// the active one on every eval; nothing survives across evaluations.
type Sink struct {
	buf    strings.Builder
	logger *logrus.Logger
}

// New returns a fresh Sink that forwards every line to logger at Debug
// severity. A nil logger falls back to logrus's standard logger.
func New(logger *logrus.Logger) *Sink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Sink{logger: logger}
}

// Log records one console call: level is forwarded to the host log but
// ignored for buffer formatting, and args are already-stringified values
// joined with ", " plus a trailing newline.
func (s *Sink) Log(level string, args []string) {
	line := strings.Join(args, ", ")
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	s.logger.WithField("console_level", level).Debug(line)
}

// String returns the accumulated console output for this evaluation.
func (s *Sink) String() string {
	return s.buf.String()
}
