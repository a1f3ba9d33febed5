// Package observability defines the logging contract used across the
// evaluation pipeline. Long corpus runs emit per-file warnings and stage
// progress through a Logger so callers decide where that stream goes.
package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type float64Field struct {
	key string
	val float64
}

func (f float64Field) Key() string        { return f.key }
func (f float64Field) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field          { return stringField{key, value} }
func Int(key string, value int) Field         { return intField{key, value} }
func Float64(key string, value float64) Field { return float64Field{key, value} }
func Error(key string, err error) Field       { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// ConsoleLogger writes level-prefixed lines with key=value fields, the format
// a human watches while a batch run scrolls by.
type ConsoleLogger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
	bound   []Field
}

// NewConsoleLogger logs to stderr. Debug lines are suppressed unless verbose
// is set.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{out: os.Stderr, verbose: verbose}
}

// NewConsoleLoggerTo logs to the given writer, for tests.
func NewConsoleLoggerTo(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{out: w, verbose: verbose}
}

func (l *ConsoleLogger) Debug(msg string, fields ...Field) {
	if !l.verbose {
		return
	}
	l.emit("DEBUG", msg, fields)
}

func (l *ConsoleLogger) Info(msg string, fields ...Field)  { l.emit("INFO", msg, fields) }
func (l *ConsoleLogger) Warn(msg string, fields ...Field)  { l.emit("WARN", msg, fields) }
func (l *ConsoleLogger) Error(msg string, fields ...Field) { l.emit("ERROR", msg, fields) }

func (l *ConsoleLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(l.bound)+len(fields))
	bound = append(bound, l.bound...)
	bound = append(bound, fields...)
	return &ConsoleLogger{out: l.out, verbose: l.verbose, bound: bound}
}

func (l *ConsoleLogger) emit(level, msg string, fields []Field) {
	var sb strings.Builder
	sb.WriteString(level)
	sb.WriteByte(' ')
	sb.WriteString(msg)
	for _, f := range l.bound {
		fmt.Fprintf(&sb, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key(), f.Value())
	}
	sb.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, sb.String())
}
