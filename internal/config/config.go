package config

import (
	"github.com/mkotlyarov/todo-items-service/internal/logger"
)

// Config is the immutable application configuration, loaded once at startup
// and passed explicitly to every component that needs it.
type Config struct {
	Server   ServerConfig        `mapstructure:"server"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Auth     AuthConfig          `mapstructure:"auth"`
	CORS     CORSConfig          `mapstructure:"cors"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`  // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
	Migrate           bool   `mapstructure:"migrate"`
	MigrationsDir     string `mapstructure:"migrations_dir"`
}

// AuthConfig carries the shared secret for the API-key gate.
//
// An empty Key means the gate is FAIL-OPEN: every request is admitted
// without credentials. This mirrors the progressive-rollout behavior of the
// upstream deployment and is security-relevant; the server logs a warning
// at startup when it applies.
type AuthConfig struct {
	Key string `mapstructure:"key"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
