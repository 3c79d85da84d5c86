// Package telemetry provides structured, level-gated logging for the core,
// generalized from the teacher's internal/logger
// (ai-anonymizing-proxy/internal/logger). The teacher writes straight to
// os.Stderr; since §6 specifies a single host-provided log callback import
// instead of a real logging subsystem, this package keeps the teacher's
// fixed-column line format and level-gating but routes output through a
// pluggable Sink, defaulting to stderr until a host callback is attached via
// SetSink.
package telemetry

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Level represents a log severity, lowest to highest.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) label() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN "
	case LevelError:
		return "ERROR"
	default:
		return "INFO "
	}
}

// Sink receives one already-formatted log line (without trailing newline).
// The default sink writes to os.Stderr; SetSink installs a replacement, such
// as a wrapper around a host log callback. cmd/libonefw does not install one.
type Sink func(level Level, line string)

func stderrSink(_ Level, line string) {
	log.New(os.Stderr, "", 0).Println(line)
}

// Logger writes structured log lines for a single module.
type Logger struct {
	module string
	level  Level
	sink   Sink
}

// New creates a Logger for the given module at the given minimum level.
// Unrecognized level strings default to "info".
func New(module, levelStr string) *Logger {
	return &Logger{module: strings.ToUpper(module), level: parseLevel(levelStr), sink: stderrSink}
}

// SetLevel changes the minimum log level at runtime.
func (l *Logger) SetLevel(levelStr string) { l.level = parseLevel(levelStr) }

// SetSink replaces the output sink, e.g. to forward through a host-provided
// log callback instead of stderr. Passing nil restores the stderr sink.
func (l *Logger) SetSink(sink Sink) {
	if sink == nil {
		sink = stderrSink
	}
	l.sink = sink
}

func (l *Logger) Debug(action, msg string) { l.write(LevelDebug, action, msg) }
func (l *Logger) Info(action, msg string)  { l.write(LevelInfo, action, msg) }
func (l *Logger) Warn(action, msg string)  { l.write(LevelWarn, action, msg) }
func (l *Logger) Error(action, msg string) { l.write(LevelError, action, msg) }

func (l *Logger) Debugf(action, format string, args ...any) { l.Debug(action, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(action, format string, args ...any)  { l.Info(action, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(action, format string, args ...any)  { l.Warn(action, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(action, format string, args ...any) { l.Error(action, fmt.Sprintf(format, args...)) }

func (l *Logger) write(level Level, action, msg string) {
	if level < l.level {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	line := fmt.Sprintf("%s | %-12s | %-22s | %s | %s", ts, l.module, action, level.label(), msg)
	l.sink(level, line)
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
