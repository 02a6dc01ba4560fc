package legendsauth

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/exchange"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/internal/telemetry"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/session"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/token"
)

// Builder defines a public type used by legendsauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	storage   session.Storage
	exchanger exchange.Exchanger
	matrix    *permission.Matrix
	sink      TelemetrySink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStorage sets an explicit persistence backend, taking precedence over
// [Builder.WithRedis].
func (b *Builder) WithStorage(storage session.Storage) *Builder {
	b.storage = storage
	return b
}

// WithExchanger describes the withexchanger operation and its observable behavior.
//
// WithExchanger may return an error when input validation, dependency calls, or security checks fail.
// WithExchanger does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithExchanger(e exchange.Exchanger) *Builder {
	b.exchanger = e
	return b
}

// WithMatrix replaces the default role-permission matrix.
func (b *Builder) WithMatrix(m *permission.Matrix) *Builder {
	b.matrix = m
	return b
}

// WithTelemetrySink describes the withtelemetrysink operation and its observable behavior.
//
// WithTelemetrySink may return an error when input validation, dependency calls, or security checks fail.
// WithTelemetrySink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTelemetrySink(sink TelemetrySink) *Builder {
	b.sink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Provider, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- EXCHANGER --------
	exchanger := b.exchanger
	if exchanger == nil {
		if cfg.Exchange.BaseURL == "" {
			return nil, errors.New("exchanger or Exchange.BaseURL required")
		}
		exchanger = exchange.NewClient(nil, cfg.Exchange.BaseURL, cfg.Exchange.LoginPath, cfg.Exchange.RegisterPath)
	}

	// -------- STORAGE --------
	storage := b.storage
	if storage == nil {
		if b.redis != nil {
			storage = session.NewRedisStorage(b.redis, cfg.Storage.RedisPrefix, cfg.Storage.Key, cfg.Storage.TTL)
		} else {
			storage = session.NewMemoryStorage()
		}
	}

	// -------- PERMISSION MATRIX --------
	matrix := b.matrix
	if matrix == nil {
		matrix = permission.DefaultMatrix()
	}

	// -------- SESSION STORE --------
	store := session.NewStore(storage, func(raw string) error {
		return token.Validate(raw, time.Now())
	})

	provider := &Provider{
		config:    cfg,
		matrix:    matrix,
		store:     store,
		exchanger: exchanger,
		metrics:   NewMetrics(cfg.Metrics),
	}
	provider.telemetry = telemetry.NewDispatcher(telemetry.Config{
		Enabled:    cfg.Telemetry.Enabled,
		BufferSize: cfg.Telemetry.BufferSize,
		DropIfFull: cfg.Telemetry.DropIfFull,
	}, b.sink)

	b.built = true

	return provider, nil
}
