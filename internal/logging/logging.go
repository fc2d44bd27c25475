package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Options configure the process logger.
type Options struct {
	Level  string // trace|debug|info|warn|error
	Format string // text|json
}

// New builds the process logger.
func New(opts Options) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	switch opts.Level {
	case "trace":
		l.SetLevel(logrus.TraceLevel)
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	if opts.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return l
}

// Adapter exposes a logrus entry through the printf-style interface
// the auth core consumes.
type Adapter struct {
	entry *logrus.Entry
}

// NewAdapter wraps a logger under a component field.
func NewAdapter(l *logrus.Logger, component string) *Adapter {
	return &Adapter{entry: l.WithField("component", component)}
}

func (a *Adapter) Debug(format string, args ...any) { a.entry.Debugf(format, args...) }
func (a *Adapter) Info(format string, args ...any)  { a.entry.Infof(format, args...) }
func (a *Adapter) Error(format string, args ...any) { a.entry.Errorf(format, args...) }
