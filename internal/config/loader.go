package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the given YAML file with APP_* environment
// overrides (dots become underscores, e.g. APP_AUTH_KEY, APP_POSTGRES_HOST).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.setDefaults()
	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.Postgres.SSLMode == "" {
		c.Postgres.SSLMode = "disable"
	}
	if c.Postgres.MaxConns == 0 {
		c.Postgres.MaxConns = 10
	}
	if c.Postgres.MinConns == 0 {
		c.Postgres.MinConns = 1
	}
	if c.Postgres.MigrationsDir == "" {
		c.Postgres.MigrationsDir = "migrations/goose_sql"
	}
}

// DSN assembles the Postgres connection string from the Postgres section.
// Built through url.URL so credentials with reserved characters survive.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.Postgres.Host, c.Postgres.Port),
		Path:   c.Postgres.DBName,
	}
	if c.Postgres.User != "" || c.Postgres.Password != "" {
		u.User = url.UserPassword(c.Postgres.User, c.Postgres.Password)
	}
	q := u.Query()
	if c.Postgres.SSLMode != "" {
		q.Set("sslmode", c.Postgres.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
