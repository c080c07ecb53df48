package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
}

// Level thresholds, lowest is most verbose.
const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

type simpleLogger struct {
	logger *log.Logger
	level  int
}

var (
	loggerInstance *simpleLogger
	once           sync.Once
)

// New creates a new singleton instance of the simple logger.
// The minimum level is taken from the LOG_LEVEL environment variable
// (debug, info, warn, error); anything else means info.
func New() Logger {
	once.Do(func() {
		loggerInstance = &simpleLogger{
			logger: log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile),
			level:  levelFromEnv(),
		}
	})
	return loggerInstance
}

func levelFromEnv() int {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Error logs an error message with the 🔴 emoji.
func (l *simpleLogger) Error(msg string, err error) {
	l.logger.Output(2, fmt.Sprintf("🔴 ERROR: %s - %v", msg, err))
}

// Warn logs a warning message with the ⚠️ emoji.
func (l *simpleLogger) Warn(msg string) {
	if l.level > levelWarn {
		return
	}
	l.logger.Output(2, fmt.Sprintf("⚠️ WARN: %s", msg))
}

// Info logs an informational message.
func (l *simpleLogger) Info(msg string) {
	if l.level > levelInfo {
		return
	}
	l.logger.Output(2, fmt.Sprintf("INFO: %s", msg))
}

// Debug logs a debug message.
func (l *simpleLogger) Debug(msg string) {
	if l.level > levelDebug {
		return
	}
	l.logger.Output(2, fmt.Sprintf("DEBUG: %s", msg))
}
