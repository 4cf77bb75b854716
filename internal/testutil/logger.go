// Package testutil holds logging helpers shared by articlecheck tests.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a debug-level logger whose records go to tb.Log,
// so they only show for failing tests or under -v.
func NewTestLogger(tb testing.TB) *slog.Logger {
	tb.Helper()
	return newDebugLogger(tbWriter{tb})
}

// NewBufferLogger returns a debug-level logger writing text records into
// the returned buffer, for tests that assert on what was logged.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return newDebugLogger(buf), buf
}

func newDebugLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// tbWriter forwards each record to tb.Log without the handler's newline.
type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
