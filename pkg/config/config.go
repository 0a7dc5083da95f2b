package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Env variable names referenced by tests and tooling.
const (
	EnvAppEnv      = "STOREFRONT_APP_ENV"
	EnvPort        = "STOREFRONT_APP_PORT"
	EnvDBPath      = "STOREFRONT_DB_PATH"
	EnvJWTSecret   = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer   = "STOREFRONT_JWT_ISSUER"
	EnvJWTExpMins  = "STOREFRONT_JWT_EXPIRATION_MINUTES"
	EnvAdminKey    = "STOREFRONT_ADMIN_KEY"
	EnvPersistence = "STOREFRONT_PERSISTENCE_DRIVER"
	EnvRedisURL    = "STOREFRONT_REDIS_URL"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Persistence  PersistenceConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Shop         ShopConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Persistence.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path            string        `envconfig:"STOREFRONT_DB_PATH" default:"storefront.db"`
	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PersistenceConfig selects the snapshot backend.
type PersistenceConfig struct {
	Driver       string        `envconfig:"STOREFRONT_PERSISTENCE_DRIVER" default:"sqlite"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_PERSISTENCE_WRITE_TIMEOUT" default:"2s"`
}

const (
	PersistenceDriverSQLite = "sqlite"
	PersistenceDriverRedis  = "redis"
)

func (p PersistenceConfig) validate() error {
	switch p.Driver {
	case PersistenceDriverSQLite, PersistenceDriverRedis:
		return nil
	}
	return fmt.Errorf("unknown persistence driver %q", p.Driver)
}

type JWTConfig struct {
	Secret            string `envconfig:"STOREFRONT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STOREFRONT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STOREFRONT_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AdminConfig carries the shared key exchanged for an admin token.
type AdminConfig struct {
	Key string `envconfig:"STOREFRONT_ADMIN_KEY" required:"true"`
}

// ShopConfig holds the domain engine tunables.
type ShopConfig struct {
	NotificationTTL    time.Duration `envconfig:"STOREFRONT_NOTIFICATION_TTL" default:"3s"`
	CouponMinimumTotal int           `envconfig:"STOREFRONT_COUPON_MINIMUM_TOTAL" default:"10000"`
	SearchDebounce     time.Duration `envconfig:"STOREFRONT_SEARCH_DEBOUNCE" default:"500ms"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"true"`
}
