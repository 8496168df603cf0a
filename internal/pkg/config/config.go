package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Valkey      ValkeyConfig      `mapstructure:"valkey"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Geolocation GeolocationConfig `mapstructure:"geolocation"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StorageConfig selects the key-value backend the storage gateway runs
// on. "postgres" and "valkey" are durable; "memory" is for development.
type StorageConfig struct {
	Backend  string         `mapstructure:"backend"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type AuthConfig struct {
	JWTSecret    string `mapstructure:"jwt_secret"`
	TokenTTLMins int    `mapstructure:"token_ttl_minutes"`
}

// GeolocationConfig configures the location provider. TimeoutMs bounds a
// single acquisition; there is no automatic retry.
type GeolocationConfig struct {
	Provider  string  `mapstructure:"provider"` // ipapi | static | none
	TimeoutMs int     `mapstructure:"timeout_ms"`
	IPAPIBase string  `mapstructure:"ipapi_base_url"`
	StaticLat float64 `mapstructure:"static_lat"`
	StaticLon float64 `mapstructure:"static_lon"`
	StaticAcc float64 `mapstructure:"static_accuracy"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("storage.backend", "postgres")
	v.SetDefault("storage.postgres.host", "localhost")
	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.postgres.user", "freshconnect")
	v.SetDefault("storage.postgres.password", "")
	v.SetDefault("storage.postgres.dbname", "freshconnect")
	v.SetDefault("storage.postgres.sslmode", "disable")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_minutes", 720)
	v.SetDefault("geolocation.provider", "ipapi")
	v.SetDefault("geolocation.timeout_ms", 10000)
	v.SetDefault("geolocation.ipapi_base_url", "http://ip-api.com/json")
	v.SetDefault("geolocation.static_accuracy", 5000)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: FRESHCONNECT_STORAGE_BACKEND → storage.backend
	v.SetEnvPrefix("FRESHCONNECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	switch c.Storage.Backend {
	case "postgres":
		if c.Storage.Postgres.Host == "" {
			errs = append(errs, "storage.postgres.host is required")
		}
		if c.Storage.Postgres.User == "" {
			errs = append(errs, "storage.postgres.user is required")
		}
		if c.Storage.Postgres.DBName == "" {
			errs = append(errs, "storage.postgres.dbname is required")
		}
	case "valkey":
		if c.Valkey.Addr == "" {
			errs = append(errs, "valkey.addr is required for the valkey backend")
		}
	case "memory":
		// nothing to check
	default:
		errs = append(errs, fmt.Sprintf("storage.backend must be postgres, valkey, or memory, got %q", c.Storage.Backend))
	}

	switch c.Geolocation.Provider {
	case "ipapi", "static", "none":
	default:
		errs = append(errs, fmt.Sprintf("geolocation.provider must be ipapi, static, or none, got %q", c.Geolocation.Provider))
	}
	if c.Geolocation.TimeoutMs <= 0 {
		errs = append(errs, "geolocation.timeout_ms must be positive")
	}

	if c.Auth.TokenTTLMins <= 0 {
		errs = append(errs, "auth.token_ttl_minutes must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
