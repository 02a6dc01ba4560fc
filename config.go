package legendsauth

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by legendsauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Exchange   ExchangeConfig   `envPrefix:"EXCHANGE_"`
	Validation ValidationConfig `envPrefix:"VALIDATION_"`
	Storage    StorageConfig    `envPrefix:"STORAGE_"`
	Guard      GuardConfig      `envPrefix:"GUARD_"`
	Telemetry  TelemetryConfig  `envPrefix:"TELEMETRY_"`
	Metrics    MetricsConfig    `envPrefix:"METRICS_"`
}

/*
====================================
EXCHANGE CONFIG
====================================
*/

// ExchangeConfig defines a public type used by legendsauth APIs.
//
// ExchangeConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ExchangeConfig struct {
	BaseURL      string        `env:"BASE_URL"`
	LoginPath    string        `env:"LOGIN_PATH" envDefault:"/auth/login"`
	RegisterPath string        `env:"REGISTER_PATH" envDefault:"/auth/register"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

/*
====================================
VALIDATION CONFIG
====================================
*/

// ValidationConfig defines a public type used by legendsauth APIs.
//
// ValidationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ValidationConfig struct {
	MinUsernameLength int `env:"MIN_USERNAME_LENGTH" envDefault:"3"`
	MinPasswordLength int `env:"MIN_PASSWORD_LENGTH" envDefault:"6"`
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by legendsauth APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	Key         string        `env:"KEY" envDefault:"legends:session"`
	RedisPrefix string        `env:"REDIS_PREFIX" envDefault:"la"`
	TTL         time.Duration `env:"TTL" envDefault:"0"` // 0 persists without expiry
}

/*
====================================
GUARD CONFIG
====================================
*/

// GuardConfig defines a public type used by legendsauth APIs.
//
// GuardConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GuardConfig struct {
	LoginRoute string `env:"LOGIN_ROUTE" envDefault:"/login"`
}

/*
====================================
TELEMETRY CONFIG
====================================
*/

// TelemetryConfig defines a public type used by legendsauth APIs.
//
// TelemetryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TelemetryConfig struct {
	Enabled    bool `env:"ENABLED" envDefault:"true"`
	BufferSize int  `env:"BUFFER_SIZE" envDefault:"256"`
	DropIfFull bool `env:"DROP_IF_FULL" envDefault:"true"`
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by legendsauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool `env:"ENABLED" envDefault:"true"`
	EnableLatencyHistograms bool `env:"ENABLE_LATENCY_HISTOGRAMS" envDefault:"false"`
}

// DefaultConfig returns the configuration the provider ships with. The
// exchange base URL has no default and must be supplied before Build.
func DefaultConfig() Config {
	return Config{
		Exchange: ExchangeConfig{
			LoginPath:    "/auth/login",
			RegisterPath: "/auth/register",
			Timeout:      10 * time.Second,
		},
		Validation: ValidationConfig{
			MinUsernameLength: 3,
			MinPasswordLength: 6,
		},
		Storage: StorageConfig{
			Key:         "legends:session",
			RedisPrefix: "la",
		},
		Guard: GuardConfig{
			LoginRoute: "/login",
		},
		Telemetry: TelemetryConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// Config holds no reference types today; value copy is a deep copy.
	return cfg
}

// Validate checks the configuration for values the provider cannot run with.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.Exchange.Timeout <= 0 {
		return errors.New("Exchange.Timeout must be positive")
	}
	if !strings.HasPrefix(c.Exchange.LoginPath, "/") {
		return errors.New("Exchange.LoginPath must start with /")
	}
	if !strings.HasPrefix(c.Exchange.RegisterPath, "/") {
		return errors.New("Exchange.RegisterPath must start with /")
	}
	if c.Validation.MinUsernameLength < 1 {
		return errors.New("Validation.MinUsernameLength must be at least 1")
	}
	if c.Validation.MinPasswordLength < 1 {
		return errors.New("Validation.MinPasswordLength must be at least 1")
	}
	if c.Storage.Key == "" {
		return errors.New("Storage.Key must not be empty")
	}
	if c.Storage.TTL < 0 {
		return errors.New("Storage.TTL must not be negative")
	}
	if !strings.HasPrefix(c.Guard.LoginRoute, "/") {
		return errors.New("Guard.LoginRoute must start with /")
	}
	if c.Telemetry.Enabled && c.Telemetry.BufferSize < 1 {
		return errors.New("Telemetry.BufferSize must be at least 1 when telemetry is enabled")
	}
	return nil
}
