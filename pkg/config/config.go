package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App               AppConfig
	Service           ServiceConfig
	DB                DBConfig
	Redis             RedisConfig
	JWT               JWTConfig
	Admin             AdminConfig
	Password          PasswordConfig
	RegisterRateLimit RegisterRateLimitConfig
	FeatureFlags      FeatureFlagsConfig
	Cron              CronConfig
	Storage           StorageRetryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SWINGBAY_APP_ENV" required:"true"`
	Port         string `envconfig:"SWINGBAY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SWINGBAY_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"SWINGBAY_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"SWINGBAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SWINGBAY_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SWINGBAY_DB_DSN"`
	Driver string `envconfig:"SWINGBAY_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SWINGBAY_DB_HOST"`
	Port     int    `envconfig:"SWINGBAY_DB_PORT" default:"5432"`
	User     string `envconfig:"SWINGBAY_DB_USER"`
	Password string `envconfig:"SWINGBAY_DB_PASSWORD"`
	Name     string `envconfig:"SWINGBAY_DB_NAME"`
	SSLMode  string `envconfig:"SWINGBAY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SWINGBAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SWINGBAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SWINGBAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWINGBAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SWINGBAY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SWINGBAY_REDIS_ADDR"`
	Password     string        `envconfig:"SWINGBAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWINGBAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWINGBAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWINGBAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWINGBAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWINGBAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWINGBAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SWINGBAY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SWINGBAY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SWINGBAY_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AdminConfig carries the operator credential that authorizes code issuance
// and catalogue writes. The hash is Argon2id, produced offline.
type AdminConfig struct {
	Username     string `envconfig:"SWINGBAY_ADMIN_USERNAME" required:"true"`
	PasswordHash string `envconfig:"SWINGBAY_ADMIN_PASSWORD_HASH" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SWINGBAY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SWINGBAY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SWINGBAY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SWINGBAY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SWINGBAY_ARGON_KEY_LEN" default:"32"`
}

type RegisterRateLimitConfig struct {
	Window  time.Duration `envconfig:"SWINGBAY_REGISTER_RATE_LIMIT_WINDOW" default:"1m"`
	PCLimit int           `envconfig:"SWINGBAY_REGISTER_RATE_LIMIT_PC_LIMIT" default:"10"`
	IPLimit int           `envconfig:"SWINGBAY_REGISTER_RATE_LIMIT_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SWINGBAY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SWINGBAY_AUTO_MIGRATE" default:"false"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"SWINGBAY_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"SWINGBAY_CRON_LOCK_TTL" default:"25h"`
	// NormalizerStore restricts the scheduled normalizer sweep to one store
	// when set; empty means all stores.
	NormalizerStore string `envconfig:"SWINGBAY_CRON_NORMALIZER_STORE"`
}

// StorageRetryConfig bounds transparent retries of transient storage failures.
type StorageRetryConfig struct {
	MaxAttempts uint64        `envconfig:"SWINGBAY_STORAGE_RETRY_MAX_ATTEMPTS" default:"3"`
	BaseDelay   time.Duration `envconfig:"SWINGBAY_STORAGE_RETRY_BASE_DELAY" default:"50ms"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range componentDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
