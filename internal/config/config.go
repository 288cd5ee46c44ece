package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env         string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port        string `env:"PORT" envDefault:"3000" validate:"required"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// DatabaseURL wins over the DB_* parts when set
	DatabaseURL     string        `env:"DATABASE_URL"`
	DBHost          string        `env:"DB_HOST" envDefault:"localhost" validate:"required_without=DatabaseURL"`
	DBPort          string        `env:"DB_PORT" envDefault:"5432"`
	DBUser          string        `env:"DB_USER" envDefault:"postgres" validate:"required_without=DatabaseURL"`
	DBPassword      string        `env:"DB_PASSWORD"`
	DBName          string        `env:"DB_NAME" envDefault:"streetbite" validate:"required_without=DatabaseURL"`
	DBSSLMode       string        `env:"DB_SSLMODE" envDefault:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	DBMaxRetries    int           `env:"DB_MAX_RETRIES" envDefault:"5" validate:"min=1,max=50"`
	DBRetryInterval time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s"`

	JWTSecret          string `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTExpirationHours int    `env:"JWT_EXPIRATION_HOURS" envDefault:"24" validate:"min=1,max=720"`
	BcryptCost         int    `env:"BCRYPT_COST" envDefault:"10" validate:"min=4,max=31"`
	InitialAdminEmail  string `env:"INITIAL_ADMIN_EMAIL" validate:"omitempty,email"`

	StandTimezone      string   `env:"STAND_TIMEZONE" envDefault:"Europe/Paris" validate:"required,timezone"`
	OpenStandsRefresh  string   `env:"OPEN_STANDS_REFRESH" envDefault:"@every 1m" validate:"required"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:8080" envSeparator:","`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DSN returns the Postgres connection string
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Location is the time zone opening hours are evaluated in
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.StandTimezone)
	if err != nil {
		return nil, fmt.Errorf("load stand timezone %q: %w", c.StandTimezone, err)
	}
	return loc, nil
}

func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWTExpirationHours) * time.Hour
}
