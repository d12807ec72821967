// Package errtrack is the exception-reporting sink shared by the cache layer
// and the page assemblers. Reporting is observability only: a Reporter never
// returns an error and never panics into its caller.
package errtrack

import (
	"Arena/pkg/log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

// Options carries the context attached to a captured exception.
type Options struct {
	Level Level
	Tags  map[string]string
	Extra map[string]any
}

type Reporter interface {
	CaptureException(err error, opts Options)
}

// LogReporter writes captured exceptions to a zap logger.
type LogReporter struct {
	Logger *zap.Logger
}

func NewLogReporter(logger *zap.Logger) *LogReporter {
	if logger == nil {
		logger = log.L
	}
	return &LogReporter{Logger: logger}
}

func (r *LogReporter) CaptureException(err error, opts Options) {
	defer func() {
		_ = recover()
	}()
	if err == nil {
		return
	}

	fields := make([]zap.Field, 0, len(opts.Tags)+2)
	fields = append(fields, zap.Error(err))
	for k, v := range opts.Tags {
		fields = append(fields, zap.String("tag."+k, v))
	}
	if len(opts.Extra) > 0 {
		fields = append(fields, zap.Any("extra", opts.Extra))
	}

	if ce := r.Logger.Check(zapLevel(opts.Level), "exception captured"); ce != nil {
		ce.Write(fields...)
	}
}

func zapLevel(level Level) zapcore.Level {
	switch level {
	case LevelInfo:
		return zap.InfoLevel
	case LevelWarning:
		return zap.WarnLevel
	case LevelFatal:
		// fatal is a severity for the tracker, never a reason to exit
		return zap.ErrorLevel
	default:
		return zap.ErrorLevel
	}
}

// Multi fans a capture out to several reporters.
type Multi []Reporter

func (m Multi) CaptureException(err error, opts Options) {
	for _, r := range m {
		if r != nil {
			Safe(r).CaptureException(err, opts)
		}
	}
}

type safeReporter struct {
	next Reporter
}

// Safe wraps a reporter so that a panic inside it is swallowed.
func Safe(r Reporter) Reporter {
	if _, ok := r.(safeReporter); ok {
		return r
	}
	return safeReporter{next: r}
}

func (s safeReporter) CaptureException(err error, opts Options) {
	defer func() {
		_ = recover()
	}()
	s.next.CaptureException(err, opts)
}
