package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type LogLevel int

type Logger struct {
	logLevel LogLevel
	prefix   string
	logger   *log.Logger
}

const (
	ERROR LogLevel = iota
	INFO
	DEBUG
)

func (l LogLevel) String() string {
	switch l {
	case ERROR:
		return "error"
	case INFO:
		return "info"
	case DEBUG:
		return "debug"
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLevel maps "error", "info" or "debug" (any case) to a LogLevel. An
// empty string is ERROR, the quietest level.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "":
		return ERROR, nil
	case "info":
		return INFO, nil
	case "debug":
		return DEBUG, nil
	}
	return ERROR, fmt.Errorf("unknown log level %q", s)
}

// New returns a logger writing to w. A nil writer discards everything.
func New(w io.Writer, logLevel LogLevel) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		logLevel: logLevel,
		logger:   log.New(w, "", log.Ldate|log.Ltime),
	}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, ERROR)
}

// With returns a logger sharing l's output whose lines start with name.
func (l *Logger) With(name string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		logLevel: l.logLevel,
		prefix:   l.prefix + name + ": ",
		logger:   l.logger,
	}
}

func (l *Logger) Level() LogLevel {
	if l == nil {
		return ERROR
	}
	return l.logLevel
}

func (l *Logger) Info(format string, v ...any) {
	l.printf(INFO, "INFO: ", format, v...)
}

func (l *Logger) Debug(format string, v ...any) {
	l.printf(DEBUG, "DEBUG: ", format, v...)
}

func (l *Logger) Error(format string, v ...any) {
	l.printf(ERROR, "ERROR: ", format, v...)
}

func (l *Logger) printf(level LogLevel, tag, format string, v ...any) {
	if l == nil || l.logLevel < level {
		return
	}
	l.logger.Printf(tag+l.prefix+format, v...)
}
