// Package logging is a small structured logger in the style the teacher
// repo uses throughout its indexer: leveled *log.Logger instances, an
// optional set of key=value fields per message, and a silent variant for
// tests.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Field is one structured key=value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// Logger provides leveled, optionally structured logging. Debug output is
// gated on verbose.
type Logger struct {
	verbose bool
	infoLog *log.Logger
	warnLog *log.Logger
	errLog  *log.Logger
	dbgLog  *log.Logger
}

// New creates a Logger writing to stdout/stderr.
func New(verbose bool) *Logger {
	return &Logger{
		verbose: verbose,
		infoLog: log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime),
		warnLog: log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime),
		errLog:  log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime),
		dbgLog:  log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// NewSilent creates a Logger that discards everything, for tests.
func NewSilent() *Logger {
	discard := log.New(io.Discard, "", 0)
	return &Logger{infoLog: discard, warnLog: discard, errLog: discard, dbgLog: discard}
}

func (l *Logger) Info(msg string, args ...interface{})  { logLine(l.infoLog, msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { logLine(l.warnLog, msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { logLine(l.errLog, msg, args) }

func (l *Logger) Debug(msg string, args ...interface{}) {
	if !l.verbose {
		return
	}
	logLine(l.dbgLog, msg, args)
}

func logLine(target *log.Logger, msg string, args []interface{}) {
	if len(args) > 0 {
		target.Printf(msg, args...)
	} else {
		target.Println(msg)
	}
}

func (l *Logger) Infof(format string, args ...interface{})  { l.infoLog.Println(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.warnLog.Println(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.errLog.Println(fmt.Sprintf(format, args...)) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.dbgLog.Println(fmt.Sprintf(format, args...))
}

// InfoWithFields logs msg followed by "key=value" pairs.
func (l *Logger) InfoWithFields(msg string, fields ...Field) {
	l.infoLog.Println(formatWithFields(msg, fields...))
}

func (l *Logger) WarnWithFields(msg string, fields ...Field) {
	l.warnLog.Println(formatWithFields(msg, fields...))
}

// ErrorWithFields logs msg, the error (if any), and fields.
func (l *Logger) ErrorWithFields(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
	}
	l.errLog.Println(formatWithFields(msg, fields...))
}

func (l *Logger) DebugWithFields(msg string, fields ...Field) {
	if !l.verbose {
		return
	}
	l.dbgLog.Println(formatWithFields(msg, fields...))
}

func formatWithFields(msg string, fields ...Field) string {
	if len(fields) == 0 {
		return msg
	}
	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, msg)
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, formatValue(f.Value)))
	}
	return strings.Join(parts, " ")
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		if strings.Contains(v, " ") {
			return fmt.Sprintf("%q", v)
		}
		return v
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case error:
		return fmt.Sprintf("%q", v.Error())
	default:
		return fmt.Sprintf("%v", v)
	}
}
