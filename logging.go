package flexfs

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Level is a logging severity, mirroring the Logger collaborator's level
// set.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelErr
	LevelOff
)

// Logger is the logging collaborator consumed by both backends. A null
// Logger disables output entirely.
type Logger interface {
	Log(ts time.Time, source string, level Level, message string)
}

// NullLogger discards every message.
type NullLogger struct{}

func (NullLogger) Log(time.Time, string, Level, string) {}

// LogrusLogger adapts a *logrus.Logger to the Logger interface. The example
// CLI passes one to the sftp session; sftp.Options falls back to NullLogger
// when no Logger is set.
type LogrusLogger struct {
	Entry *logrus.Entry
}

// NewLogrusLogger wraps l, or logrus.StandardLogger() if l is nil.
func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &LogrusLogger{Entry: logrus.NewEntry(l)}
}

func (g *LogrusLogger) Log(ts time.Time, source string, level Level, message string) {
	entry := g.Entry.WithTime(ts)
	if source != "" {
		entry = entry.WithField("source", source)
	}
	switch level {
	case LevelTrace:
		entry.Trace(message)
	case LevelDebug:
		entry.Debug(message)
	case LevelInfo:
		entry.Info(message)
	case LevelWarn:
		entry.Warn(message)
	case LevelErr:
		entry.Error(message)
	case LevelOff:
	}
}
