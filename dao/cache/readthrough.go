package cache

import (
	"Arena/config"
	"Arena/pkg/errtrack"
	"Arena/pkg/log"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("Arena/dao/cache")

// HandleProvider hands out a ready Redis client, or nil when the cache is
// unavailable.
type HandleProvider interface {
	GetHandle(ctx context.Context) *redis.Client
}

// FetchFn loads a value from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// PageCache is the only integration point between page assemblers and Redis.
type PageCache struct {
	handles  HandleProvider
	reporter errtrack.Reporter
	prefix   string
}

func NewPageCache(conf *config.Config, handles HandleProvider, reporter errtrack.Reporter) *PageCache {
	p := &PageCache{
		handles:  handles,
		reporter: errtrack.Safe(reporter),
	}
	if conf.Cache != nil {
		p.prefix = conf.Cache.Prefix
	}
	return p
}

func (p *PageCache) key(key string) string {
	if p.prefix == "" {
		return key
	}
	return p.prefix + ":" + key
}

// GetCachedData returns the cached value for key, or calls fetch and stores
// its result for ttl. Cache failures are reported and answered by calling
// fetch directly; only errors returned by fetch reach the caller, and fetch
// runs at most once per call.
func GetCachedData[T any](ctx context.Context, p *PageCache, key string, fetch FetchFn[T], ttl time.Duration) (T, error) {
	ctx, span := tracer.Start(ctx, "cache.get_cached_data", trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	handle := p.handles.GetHandle(ctx)
	if handle == nil {
		p.observe(span, outcomeBypass)
		log.L.Debug("cache unavailable, fetching directly", zap.String("key", key))
		return fetch(ctx)
	}

	fullKey := p.key(key)
	raw, err := handle.Get(ctx, fullKey).Bytes()
	outcome := outcomeMiss
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			// overwrite the corrupt entry with the fresh value below
			p.capture(err, "decode", key)
			outcome = outcomeError
			break
		}
		p.observe(span, outcomeHit)
		return v, nil
	case errors.Is(err, redis.Nil):
	default:
		if ctx.Err() == nil {
			p.capture(err, "read", key)
		}
		p.observe(span, outcomeError)
		return fetch(ctx)
	}

	v, err := fetch(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return v, err
	}
	p.observe(span, outcome)

	payload, err := json.Marshal(v)
	if err != nil {
		p.capture(err, "encode", key)
		return v, nil
	}
	if err := handle.SetEx(ctx, fullKey, payload, ttl).Err(); err != nil {
		log.L.Warn("cache write failed", zap.String("key", key), zap.Duration("ttl", ttl), zap.Error(err))
	}
	return v, nil
}

func (p *PageCache) capture(err error, op, key string) {
	p.reporter.CaptureException(err, errtrack.Options{
		Level: errtrack.LevelWarning,
		Tags: map[string]string{
			"component": "cache",
			"cache_op":  op,
		},
		Extra: map[string]any{"key": key},
	})
}

func (p *PageCache) observe(span trace.Span, outcome string) {
	requestsTotal.WithLabelValues(outcome).Inc()
	span.SetAttributes(attribute.String("cache.outcome", outcome))
}
