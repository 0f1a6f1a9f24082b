package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Inventory    InventoryConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"VISITREPORT_APP_ENV" required:"true"`
	Port         string `envconfig:"VISITREPORT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VISITREPORT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VISITREPORT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VISITREPORT_DB_DSN"`
	Driver string `envconfig:"VISITREPORT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VISITREPORT_DB_HOST"`
	LegacyPort     int    `envconfig:"VISITREPORT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VISITREPORT_DB_USER"`
	LegacyPassword string `envconfig:"VISITREPORT_DB_PASSWORD"`
	LegacyName     string `envconfig:"VISITREPORT_DB_NAME"`
	LegacySSLMode  string `envconfig:"VISITREPORT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VISITREPORT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VISITREPORT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VISITREPORT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VISITREPORT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig accepts either a full URL or the discrete address fields.
// pkg/redis errors when both are empty.
type RedisConfig struct {
	URL          string        `envconfig:"VISITREPORT_REDIS_URL"`
	Address      string        `envconfig:"VISITREPORT_REDIS_ADDR"`
	Password     string        `envconfig:"VISITREPORT_REDIS_PASSWORD"`
	DB           int           `envconfig:"VISITREPORT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VISITREPORT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VISITREPORT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VISITREPORT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VISITREPORT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VISITREPORT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// InventoryConfig tunes the inventory summary cache.
type InventoryConfig struct {
	SummaryCacheTTL time.Duration `envconfig:"VISITREPORT_INVENTORY_SUMMARY_CACHE_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"VISITREPORT_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"VISITREPORT_SQLITE_PATH" default:"visitreport.db"`
	AutoMigrate bool   `envconfig:"VISITREPORT_AUTO_MIGRATE" default:"false"`
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
