// Package logging puts zerolog behind a small leveled interface so the
// HTTP server can be handed any backend, a plain *log.Logger included.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a leveled logger taking structured fields.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
}

// Field is one key/value pair attached to an event.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field                 { return Field{key, value} }
func Int(key string, value int) Field                { return Field{key, value} }
func Float64(key string, value float64) Field        { return Field{key, value} }
func Bool(key string, value bool) Field              { return Field{key, value} }
func Duration(key string, value time.Duration) Field { return Field{key, value} }

// Zerolog is the default Logger.
type Zerolog struct {
	zl zerolog.Logger
}

// New wraps an existing zerolog.Logger.
func New(zl zerolog.Logger) *Zerolog { return &Zerolog{zl: zl} }

// NewLogger writes timestamped JSON events to w, each tagged with component.
func NewLogger(w io.Writer, component string) *Zerolog {
	return New(zerolog.New(w).With().Timestamp().Str("component", component).Logger())
}

// NewConsole writes human readable events to w. Debug events are dropped
// unless verbose is set.
func NewConsole(w io.Writer, component string, verbose, noColor bool) *Zerolog {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.Kitchen}
	return New(zerolog.New(out).Level(level).With().Timestamp().Str("component", component).Logger())
}

// NewNop discards everything.
func NewNop() *Zerolog { return New(zerolog.Nop()) }

// Unwrap returns the zerolog.Logger, for packages that log through zerolog
// directly.
func (z *Zerolog) Unwrap() zerolog.Logger { return z.zl }

// Unwrap returns a zerolog.Logger writing to the same destination as l, so
// packages logging through zerolog follow the logger they were handed. A
// backend without a zerolog form yields a disabled logger.
func Unwrap(l Logger) zerolog.Logger {
	if u, ok := l.(interface{ Unwrap() zerolog.Logger }); ok {
		return u.Unwrap()
	}
	return zerolog.Nop()
}

func (z *Zerolog) Debug(msg string, fields ...Field) { send(z.zl.Debug(), msg, fields) }
func (z *Zerolog) Info(msg string, fields ...Field)  { send(z.zl.Info(), msg, fields) }

func (z *Zerolog) Error(msg string, err error, fields ...Field) {
	send(z.zl.Error().Err(err), msg, fields)
}

// send is a no-op for events below the logger level, which zerolog
// represents as nil.
func send(e *zerolog.Event, msg string, fields []Field) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		kv := make([]any, 0, 2*len(fields))
		for _, f := range fields {
			kv = append(kv, f.Key, f.Value)
		}
		e = e.Fields(kv)
	}
	e.Msg(msg)
}

// Std prints "LEVEL msg key=value ..." lines through a standard library
// logger.
type Std struct {
	l *stdlog.Logger
}

func NewStd(l *stdlog.Logger) *Std { return &Std{l: l} }

func (s *Std) Debug(msg string, fields ...Field) { s.print("DEBUG", msg, fields) }
func (s *Std) Info(msg string, fields ...Field)  { s.print("INFO", msg, fields) }

func (s *Std) Error(msg string, err error, fields ...Field) {
	s.print("ERROR", msg, append(fields[:len(fields):len(fields)], Field{"error", err}))
}

// Unwrap returns a zerolog.Logger printing plain console lines through the
// underlying *log.Logger.
func (s *Std) Unwrap() zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: stdWriter{s.l}, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(out)
}

// stdWriter prints each write as one log line.
type stdWriter struct{ l *stdlog.Logger }

func (w stdWriter) Write(p []byte) (int, error) {
	w.l.Print(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func (s *Std) print(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	s.l.Print(b.String())
}
