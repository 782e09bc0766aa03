// Package logging provides the small leveled logger the CLI driver and the
// language-server backend use for anything that isn't a structured
// diagnostic. Grounded on the teacher's pkg/cli/entry.go and cmd/lsp, both
// of which just call fmt.Fprintf(os.Stderr, "...: %s\n", err) ad hoc at
// every call site; this generalizes that into one leveled helper so
// "is this worth printing" is decided in one place (the configured level)
// rather than by scattering `if verbose` checks everywhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// Logger writes leveled, field-tagged lines to an io.Writer (stderr by
// default, keeping stdout clear for JSON-RPC framing in the LSP backend).
type Logger struct {
	w     io.Writer
	level Level
}

// New returns a Logger writing to w, suppressing anything below min.
func New(w io.Writer, min Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{w: w, level: min}
}

// Default writes to os.Stderr at LevelInfo, the CLI driver's baseline.
func Default() *Logger { return New(os.Stderr, LevelInfo) }

// Field is one key/value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

func F(key string, value interface{}) Field { return Field{Key: key, Value: value} }

func (l *Logger) log(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}
	fmt.Fprintf(l.w, "%s [%s] %s", time.Now().UTC().Format("15:04:05.000"), level, msg)
	for _, f := range fields {
		fmt.Fprintf(l.w, " %s=%v", f.Key, f.Value)
	}
	fmt.Fprintln(l.w)
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }
