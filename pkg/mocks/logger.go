package mocks

import (
	"fmt"
	"sync"

	"github.com/user/scansheet/pkg/ports"
)

// LogEntry is one recorded log call.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

type logRecorder struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Logger is a mock implementation of ports.Logger that records entries.
// Loggers derived with WithComponent share the same recording.
type Logger struct {
	rec       *logRecorder
	component string
}

// NewLogger creates a new recording Logger.
func NewLogger() *Logger {
	return &Logger{rec: &logRecorder{}}
}

func (m *Logger) log(level ports.LogLevel, msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.entries = append(m.rec.entries, LogEntry{Level: level, Component: m.component, Message: msg})
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.log(ports.LevelDebug, msg, args...) }
func (m *Logger) Info(msg string, args ...interface{})  { m.log(ports.LevelInfo, msg, args...) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.log(ports.LevelWarn, msg, args...) }
func (m *Logger) Error(msg string, args ...interface{}) { m.log(ports.LevelError, msg, args...) }

func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{rec: m.rec, component: component}
}

// Entries returns the recorded log entries (for test verification).
func (m *Logger) Entries() []LogEntry {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	return append([]LogEntry(nil), m.rec.entries...)
}

var _ ports.Logger = (*Logger)(nil)
