package logger

import (
	"log"
	"os"
)

// Logger interface for structured logging
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// SimpleLogger implements Logger with basic Go logging
type SimpleLogger struct {
	out *log.Logger
	err *log.Logger
}

// NewSimpleLogger creates a new simple logger
func NewSimpleLogger() Logger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &SimpleLogger{
		out: log.New(os.Stdout, "", flags),
		err: log.New(os.Stderr, "", flags),
	}
}

// Info logs an info message
func (l *SimpleLogger) Info(msg string, fields ...interface{}) {
	l.print(l.out, "INFO", msg, fields)
}

// Error logs an error message
func (l *SimpleLogger) Error(msg string, err error, fields ...interface{}) {
	if len(fields) > 0 {
		l.err.Printf("ERROR: %s: %v %v", msg, err, fields)
	} else {
		l.err.Printf("ERROR: %s: %v", msg, err)
	}
}

// Warn logs a warning message
func (l *SimpleLogger) Warn(msg string, fields ...interface{}) {
	l.print(l.out, "WARN", msg, fields)
}

// Debug logs a debug message
func (l *SimpleLogger) Debug(msg string, fields ...interface{}) {
	l.print(l.out, "DEBUG", msg, fields)
}

// Fatal logs a fatal error and exits
func (l *SimpleLogger) Fatal(msg string, err error, fields ...interface{}) {
	if len(fields) > 0 {
		l.err.Fatalf("FATAL: %s: %v %v", msg, err, fields)
	} else {
		l.err.Fatalf("FATAL: %s: %v", msg, err)
	}
}

func (l *SimpleLogger) print(dst *log.Logger, level, msg string, fields []interface{}) {
	if len(fields) > 0 {
		dst.Printf("%s: %s %v", level, msg, fields)
	} else {
		dst.Printf("%s: %s", level, msg)
	}
}
