package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Seed sources.
const (
	SeedBuiltin  = "builtin"
	SeedFile     = "file"
	SeedS3       = "s3"
	SeedPostgres = "postgres"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Seed     SeedConfig
	S3       S3Config
	Database DatabaseConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string // debug, info, warn or error
	Format string // json or console
}

// AuthConfig holds the staff API key. Empty disables the staff check.
type AuthConfig struct {
	StaffAPIKey string
}

// SeedConfig selects where the startup data comes from.
type SeedConfig struct {
	Source string
	File   string // path for file, key below S3.Prefix for s3
}

// S3Config locates the seed document when Seed.Source is s3.
type S3Config struct {
	Bucket string
	Region string
	Prefix string
}

// DatabaseConfig is used only when Seed.Source is postgres.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present and never overrides
// variables that are already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{StaffAPIKey: os.Getenv("STAFF_API_KEY")},
		Seed: SeedConfig{
			Source: getEnv("SEED_SOURCE", SeedBuiltin),
			File:   getEnv("SEED_FILE", "data/seed.json"),
		},
		S3: S3Config{
			Bucket: os.Getenv("S3_BUCKET"),
			Region: getEnv("S3_REGION", "us-east-1"),
			Prefix: getEnv("S3_PREFIX", "seeds/"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			Database:        getEnv("DB_NAME", "cafeteria"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 4),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks every section. Source specific sections are only checked
// for the selected seed source.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return err
	}
	if err := c.Logger.validate(); err != nil {
		return err
	}

	switch c.Seed.Source {
	case SeedBuiltin:
		return nil
	case SeedFile, SeedS3:
		if c.Seed.File == "" {
			return fmt.Errorf("seed file is required when seed source is %s", c.Seed.Source)
		}
		if c.Seed.Source == SeedS3 {
			return c.S3.validate()
		}
		return nil
	case SeedPostgres:
		return c.Database.validate()
	default:
		return fmt.Errorf("invalid seed source: %s (must be builtin, file, s3, or postgres)", c.Seed.Source)
	}
}

func (c *ServerConfig) validate() error {
	if !validPort(c.Port) {
		return fmt.Errorf("invalid server port: %d", c.Port)
	}
	return nil
}

func (c *LoggerConfig) validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Format)
	}
	return nil
}

func (c *S3Config) validate() error {
	if c.Bucket == "" {
		return errors.New("S3 bucket is required when seed source is s3")
	}
	if c.Region == "" {
		return errors.New("S3 region is required when seed source is s3")
	}
	return nil
}

func (c *DatabaseConfig) validate() error {
	switch {
	case c.Host == "":
		return errors.New("database host is required")
	case !validPort(c.Port):
		return fmt.Errorf("invalid database port: %d", c.Port)
	case c.User == "":
		return errors.New("database user is required")
	case c.Database == "":
		return errors.New("database name is required")
	case c.MinConnections < 1 || c.MaxConnections < 1:
		return errors.New("database connections must be at least 1")
	case c.MinConnections > c.MaxConnections:
		return errors.New("database min connections cannot exceed max connections")
	}
	return nil
}

func validPort(p int) bool { return p >= 1 && p <= 65535 }

// ConnectionString returns the pgx connection URL with user info escaped.
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Address returns the listen address.
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvAsInt ignores values that do not parse.
func getEnvAsInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}
