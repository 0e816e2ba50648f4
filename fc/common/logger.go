package common

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	baseOnce  sync.Once
	baseLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	baseSugar *zap.SugaredLogger
)

// base returns the process wide zap logger every Logger writes through
func base() *zap.SugaredLogger {
	baseOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = baseLevel
		cfg.DisableStacktrace = true
		cfg.DisableCaller = true
		logger, err := cfg.Build()
		if err != nil {
			logger = zap.NewNop()
		}
		baseSugar = logger.Sugar()
	})
	return baseSugar
}

// SetDebugOutput toggles debug level output for all loggers
func SetDebugOutput(enabled bool) {
	if enabled {
		baseLevel.SetLevel(zapcore.DebugLevel)
	} else {
		baseLevel.SetLevel(zapcore.InfoLevel)
	}
}

// Logger collects the messages of one request so they can be shown back to
// the user, while also writing them to the process log.
type Logger struct {
	mu      sync.Mutex
	Entries []*LogEntry
	sugar   *zap.SugaredLogger
}

// Dbg logs a debug message. Debug messages are not collected.
func (l *Logger) Dbg(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Msg logs an informational message
func (l *Logger) Msg(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.sugar.Info(msg)
	l.add(&LogEntry{false, msg})
}

// Err logs an error message
func (l *Logger) Err(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.sugar.Error(msg)
	l.add(&LogEntry{true, msg})
}

// Fatal logs and exits
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}

func (l *Logger) add(entry *LogEntry) {
	l.mu.Lock()
	l.Entries = append(l.Entries, entry)
	l.mu.Unlock()
}

// Snapshot returns a copy of the collected entries
func (l *Logger) Snapshot() []*LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]*LogEntry, len(l.Entries))
	copy(entries, l.Entries)
	return entries
}

// NewLog creates a new logger
func NewLog() *Logger {
	return &Logger{sugar: base()}
}

// LogEntry contains the message and metadata
type LogEntry struct {
	IsError bool
	Msg     string
}
