package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Postgres PostgresConfig `yaml:"postgres"`
	Auth     AuthConfig     `yaml:"auth"`
}

type AppConfig struct {
	Name     string `yaml:"name"`
	Port     string `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

type PostgresConfig struct {
	Host            string   `yaml:"host"`
	Port            string   `yaml:"port"`
	User            string   `yaml:"user"`
	Password        string   `yaml:"password"`
	DBName          string   `yaml:"dbname"`
	SSLMode         string   `yaml:"sslmode"`
	MaxConns        int32    `yaml:"max_conns"`
	MinConns        int32    `yaml:"min_conns"`
	MaxConnLifetime Duration `yaml:"max_conn_lifetime"`
	MigrationsPath  string   `yaml:"migrations_path"`
}

// AuthConfig holds the single Basic-auth account the API accepts. PasswordHash
// takes precedence over Password when both are set; it must be a bcrypt hash.
type AuthConfig struct {
	Realm        string `yaml:"realm"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

// Duration lets yaml carry values like "30m" or "1h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}

	*d = Duration(parsed)
	return nil
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := defaults()

	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	applyEnvOverrides(config)

	// chi panics on an empty routing pattern, so an explicit base_path: ""
	// falls back to the default and a missing leading slash is repaired.
	if config.App.BasePath == "" {
		config.App.BasePath = "/api"
	}
	if !strings.HasPrefix(config.App.BasePath, "/") {
		config.App.BasePath = "/" + config.App.BasePath
	}

	if config.Auth.Username == "" || (config.Auth.Password == "" && config.Auth.PasswordHash == "") {
		return nil, fmt.Errorf("auth credentials are not configured")
	}

	return config, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.App.Name = "user-service"
	cfg.App.Port = "8080"
	cfg.App.BasePath = "/api"
	cfg.Postgres.Host = "localhost"
	cfg.Postgres.Port = "5432"
	cfg.Postgres.SSLMode = "disable"
	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = Duration(30 * time.Minute)
	cfg.Postgres.MigrationsPath = "migrations"
	cfg.Auth.Realm = "user-service"
	cfg.Auth.Username = "john123"
	cfg.Auth.Password = "pass"
	return cfg
}

// Secrets can be supplied via the environment instead of the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("AUTH_USERNAME"); v != "" {
		cfg.Auth.Username = v
	}
	if v := os.Getenv("AUTH_PASSWORD"); v != "" {
		cfg.Auth.Password = v
	}
	if v := os.Getenv("AUTH_PASSWORD_HASH"); v != "" {
		cfg.Auth.PasswordHash = v
	}
}
