package testutil

import (
	"fmt"
	"sync"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

var _ logger.Logger = (*RecordingLogger)(nil)

// RecordingLogger keeps every message it receives, keyed by level.
type RecordingLogger struct {
	mu      sync.Mutex
	records map[string][]string
}

// NewRecordingLogger returns an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{records: make(map[string][]string)}
}

func (l *RecordingLogger) record(level string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[level] = append(l.records[level], fmt.Sprint(args...))
}

// Messages returns the messages logged at level, oldest first.
func (l *RecordingLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.records[level]...)
}

func (l *RecordingLogger) Debug(args ...interface{}) { l.record("debug", args...) }
func (l *RecordingLogger) Info(args ...interface{})  { l.record("info", args...) }
func (l *RecordingLogger) Warn(args ...interface{})  { l.record("warn", args...) }
func (l *RecordingLogger) Error(args ...interface{}) { l.record("error", args...) }

func (l *RecordingLogger) Fatal(args ...interface{}) {
	l.record("fatal", args...)
	panic(fmt.Sprint(args...))
}

func (l *RecordingLogger) Panic(args ...interface{}) {
	l.record("panic", args...)
	panic(fmt.Sprint(args...))
}
