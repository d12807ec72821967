package errtrack

import (
	"Arena/config"
	"Arena/pkg/log"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// SentryReporter forwards captured exceptions to Sentry.
type SentryReporter struct {
	hub *sentry.Hub
}

func NewSentryReporter(dsn, env, release string) (*SentryReporter, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	})
	if err != nil {
		return nil, err
	}
	return &SentryReporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (r *SentryReporter) CaptureException(err error, opts Options) {
	defer func() {
		if p := recover(); p != nil {
			log.L.Warn("sentry capture panicked", zap.Any("panic", p))
		}
	}()
	if err == nil {
		return
	}

	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(opts.Level))
		if len(opts.Tags) > 0 {
			scope.SetTags(opts.Tags)
		}
		if len(opts.Extra) > 0 {
			scope.SetExtras(opts.Extra)
		}
		r.hub.CaptureException(err)
	})
}

// Flush waits for buffered events, used on shutdown.
func (r *SentryReporter) Flush(timeout time.Duration) bool {
	return r.hub.Flush(timeout)
}

func sentryLevel(level Level) sentry.Level {
	switch level {
	case LevelInfo:
		return sentry.LevelInfo
	case LevelWarning:
		return sentry.LevelWarning
	case LevelFatal:
		return sentry.LevelFatal
	default:
		return sentry.LevelError
	}
}

// New always logs; it also reports to Sentry when a DSN is configured.
// A Sentry client that cannot be created degrades to logging only.
func New(cfg *config.Config) Reporter {
	logReporter := NewLogReporter(log.L)
	if cfg.Sentry == nil || cfg.Sentry.Dsn == "" {
		return logReporter
	}

	sr, err := NewSentryReporter(cfg.Sentry.Dsn, cfg.App.Env, cfg.App.Release)
	if err != nil {
		log.L.Warn("sentry disabled", zap.Error(err))
		return logReporter
	}
	return Multi{logReporter, sr}
}

// Flush drains any Sentry reporter inside r.
func Flush(r Reporter, timeout time.Duration) {
	switch v := r.(type) {
	case *SentryReporter:
		v.Flush(timeout)
	case Multi:
		for _, inner := range v {
			Flush(inner, timeout)
		}
	}
}
