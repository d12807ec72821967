package client

import (
	"Arena/config"
	"Arena/pkg/errtrack"
	"Arena/pkg/log"
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type State int

const (
	StateUninitialized State = iota
	StateConnecting
	StateReady
	// StateDisabled is terminal: no url, invalid url, or closed.
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateDisabled:
		return "disabled"
	default:
		return "uninitialized"
	}
}

// attempt is one connection attempt shared by every caller that arrives
// while it is in flight.
type attempt struct {
	done chan struct{}
	err  error
}

// RedisManager owns the single go-redis handle of the process. At most one
// connection attempt runs at a time; callers that arrive while it is in
// flight wait for its outcome.
type RedisManager struct {
	url         string
	dialTimeout time.Duration
	reporter    errtrack.Reporter
	newClient   func(opt *redis.Options) *redis.Client

	mu        sync.Mutex
	client    *redis.Client
	state     State
	inflight  *attempt
	connected bool // a connection succeeded at least once
}

func NewRedisManager(conf *config.Config, reporter errtrack.Reporter) *RedisManager {
	m := &RedisManager{
		reporter:    errtrack.Safe(reporter),
		dialTimeout: 5 * time.Second,
		newClient:   redis.NewClient,
	}
	if conf.Redis != nil {
		m.url = conf.Redis.URL
		if d := conf.Redis.DialTimeout(); d > 0 {
			m.dialTimeout = d
		}
	}
	if m.url == "" {
		m.report(errors.New("redis url not configured, caching disabled"), "unconfigured", errtrack.LevelInfo)
	}
	return m
}

func (m *RedisManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// EnsureConnected returns nil once the handle is ready or when caching is
// disabled. A failed attempt returns its error only to the callers that
// awaited it; the next caller starts a fresh attempt.
func (m *RedisManager) EnsureConnected(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateDisabled {
		m.mu.Unlock()
		return nil
	}
	if m.client != nil && m.state == StateReady {
		m.mu.Unlock()
		return nil
	}
	if m.url == "" {
		m.state = StateDisabled
		m.mu.Unlock()
		return nil
	}

	a := m.inflight
	if a == nil {
		a = &attempt{done: make(chan struct{})}
		m.inflight = a
		m.state = StateConnecting
		go m.run(a)
	}
	m.mu.Unlock()

	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetHandle returns a ready client, or nil when the cache cannot be used.
func (m *RedisManager) GetHandle(ctx context.Context) *redis.Client {
	if c := m.readyClient(); c != nil {
		return c
	}
	if err := m.EnsureConnected(ctx); err != nil {
		return nil
	}
	return m.readyClient()
}

func (m *RedisManager) Close() error {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.state = StateDisabled
	m.mu.Unlock()

	if client == nil {
		return nil
	}
	log.L.Info("redis end", zap.String("reason", "closed"))
	return client.Close()
}

func (m *RedisManager) readyClient() *redis.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateReady {
		return m.client
	}
	return nil
}

func (m *RedisManager) run(a *attempt) {
	defer func() {
		m.mu.Lock()
		if m.inflight == a {
			m.inflight = nil
		}
		m.mu.Unlock()
		close(a.done)
	}()
	a.err = m.connect()
}

func (m *RedisManager) connect() error {
	opt, err := redis.ParseURL(m.url)
	if err != nil {
		m.mu.Lock()
		m.state = StateDisabled
		m.mu.Unlock()
		log.L.Error("redis error", zap.Error(err))
		m.report(err, "invalid_url", errtrack.LevelError)
		return err
	}

	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		opt.DialTimeout = m.dialTimeout
		client = m.newClient(opt)
		client.AddHook(stateHook{m: m})
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		m.mu.Lock()
		reason := "connect_failed"
		if m.connected {
			reason = "dropped"
		}
		m.client = nil
		if m.state != StateDisabled {
			m.state = StateUninitialized
		}
		m.mu.Unlock()

		_ = client.Close()
		log.L.Error("redis error", zap.String("reason", reason), zap.Error(err))
		log.L.Info("redis end", zap.String("reason", reason))
		m.report(err, reason, errtrack.LevelError)
		return err
	}

	m.mu.Lock()
	if m.state == StateDisabled {
		// closed while the attempt was in flight
		m.mu.Unlock()
		_ = client.Close()
		return nil
	}
	m.client = client
	m.state = StateReady
	m.connected = true
	m.mu.Unlock()

	log.L.Info("redis connect", zap.String("addr", opt.Addr), zap.Int("db", opt.DB))
	return nil
}

// markReconnecting moves a ready handle back to connecting after a transport
// error, so the next GetHandle verifies the connection before using it.
func (m *RedisManager) markReconnecting(cause error) {
	m.mu.Lock()
	if m.state != StateReady {
		m.mu.Unlock()
		return
	}
	m.state = StateConnecting
	m.mu.Unlock()

	log.L.Warn("redis reconnecting", zap.Error(cause))
}

func (m *RedisManager) report(err error, state string, level errtrack.Level) {
	m.reporter.CaptureException(err, errtrack.Options{
		Level: level,
		Tags: map[string]string{
			"component":   "redis",
			"redis_state": state,
		},
		Extra: map[string]any{
			"configured": m.url != "",
		},
	})
}

// stateHook feeds go-redis dial and command outcomes into the manager's
// state machine.
type stateHook struct {
	m *RedisManager
}

func (h stateHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.L.Debug("redis dial failed", zap.String("addr", addr), zap.Error(err))
		}
		return conn, err
	}
}

func (h stateHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if isTransportErr(err) {
			h.m.markReconnecting(err)
		}
		return err
	}
}

func (h stateHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if isTransportErr(err) {
			h.m.markReconnecting(err)
		}
		return err
	}
}

func isTransportErr(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
		return false
	}
	var replyErr redis.Error
	return !errors.As(err, &replyErr)
}
