// ABOUTME: Logrus implementation of the application Logger interface
// ABOUTME: Structured fields map directly onto logrus.Fields

// Package logruslogger adapts logrus to the core Logger interface.
package logruslogger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger implements interfaces.Logger on top of a logrus.Logger.
type Logger struct {
	log *logrus.Logger
}

// New creates a logger writing structured entries to stdout. Level defaults
// to info; pass "debug" etc. to change it, unknown values keep the default.
func New(level string) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return &Logger{log: log}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}
