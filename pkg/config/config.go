package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Drafts   DraftsConfig
	Features FeatureFlagsConfig
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
	Env          string `envconfig:"TIFFIN_APP_ENV" required:"true"`
	Port         string `envconfig:"TIFFIN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TIFFIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TIFFIN_LOG_WARN_STACK" default:"false"`
	// CORSOrigins lists extra allowed origins beyond the local dev defaults,
	// comma separated.
	CORSOrigins []string `envconfig:"TIFFIN_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TIFFIN_DB_DSN"`
	Driver string `envconfig:"TIFFIN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TIFFIN_DB_HOST"`
	LegacyPort     int    `envconfig:"TIFFIN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TIFFIN_DB_USER"`
	LegacyPassword string `envconfig:"TIFFIN_DB_PASSWORD"`
	LegacyName     string `envconfig:"TIFFIN_DB_NAME"`
	LegacySSLMode  string `envconfig:"TIFFIN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TIFFIN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TIFFIN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TIFFIN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TIFFIN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TIFFIN_REDIS_URL"`
	Address      string        `envconfig:"TIFFIN_REDIS_ADDR"`
	Password     string        `envconfig:"TIFFIN_REDIS_PASSWORD"`
	DB           int           `envconfig:"TIFFIN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TIFFIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TIFFIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TIFFIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TIFFIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TIFFIN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TIFFIN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TIFFIN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TIFFIN_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TIFFIN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TIFFIN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TIFFIN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TIFFIN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TIFFIN_ARGON_KEY_LEN" default:"32"`
}

type DraftsConfig struct {
	// SnapshotTTL bounds how long an abandoned draft survives in Redis.
	// Zero means the snapshot never expires.
	SnapshotTTL time.Duration `envconfig:"TIFFIN_DRAFT_SNAPSHOT_TTL" default:"0"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TIFFIN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
