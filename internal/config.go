package internal

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server          ServerConfig          `mapstructure:"http_server" envPrefix:"HTTP_SERVER_"`
	Database        DatabaseConfig        `mapstructure:"database" envPrefix:"DATABASE_"`
	Security        SecurityConfig        `mapstructure:"security" envPrefix:"SECURITY_"`
	Directory       DirectoryConfig       `mapstructure:"directory" envPrefix:"DIRECTORY_"`
	DirectoryServer DirectoryServerConfig `mapstructure:"directory_server" envPrefix:"DIRECTORY_SERVER_"`
	Observability   ObservabilityConfig   `mapstructure:"observability" envPrefix:"OBSERVABILITY_"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" env:"PORT" envDefault:"8080"`
	BaseURL           string        `mapstructure:"base_url" env:"BASE_URL"`
	AllowedOrigins    string        `mapstructure:"allowed_origins" env:"ALLOWED_ORIGINS" envDefault:"*"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" env:"READ_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" env:"IDLE_TIMEOUT" envDefault:"60s"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" env:"WRITE_TIMEOUT" envDefault:"15s"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" env:"DRIVER" envDefault:"postgres"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" env:"CONN_MAX_IDLE_TIME" envDefault:"5m"`
	Source          string        `mapstructure:"source" env:"SOURCE"`
}

// OperatorConfig is a dashboard login. PasswordHash is a bcrypt hash, see
// `user-dashboard operator hash-password`.
type OperatorConfig struct {
	Email        string   `mapstructure:"email"`
	Name         string   `mapstructure:"name"`
	PasswordHash string   `mapstructure:"password_hash"`
	Permissions  []string `mapstructure:"permissions"`
}

type SecurityConfig struct {
	AuthEnabled          bool             `mapstructure:"auth_enabled" env:"AUTH_ENABLED" envDefault:"true"`
	JWTAccessSecret      string           `mapstructure:"jwt_access_secret" env:"JWT_ACCESS_SECRET"`
	JWTRefreshSecret     string           `mapstructure:"jwt_refresh_secret" env:"JWT_REFRESH_SECRET"`
	AccessTokenDuration  time.Duration    `mapstructure:"access_token_duration" env:"ACCESS_TOKEN_DURATION" envDefault:"15m"`
	RefreshTokenDuration time.Duration    `mapstructure:"refresh_token_duration" env:"REFRESH_TOKEN_DURATION" envDefault:"168h"`
	BCryptCost           int              `mapstructure:"bcrypt_cost" env:"BCRYPT_COST" envDefault:"12"`
	Operators            []OperatorConfig `mapstructure:"operators"`

	// A single operator can be supplied through the environment.
	OperatorEmail        string   `mapstructure:"operator_email" env:"OPERATOR_EMAIL"`
	OperatorName         string   `mapstructure:"operator_name" env:"OPERATOR_NAME"`
	OperatorPasswordHash string   `mapstructure:"operator_password_hash" env:"OPERATOR_PASSWORD_HASH"`
	OperatorPermissions  []string `mapstructure:"operator_permissions" env:"OPERATOR_PERMISSIONS" envSeparator:","`
}

// DirectoryConfig points the dashboard at the upstream user directory.
type DirectoryConfig struct {
	BaseURL      string        `mapstructure:"base_url" env:"BASE_URL" envDefault:"https://jsonplaceholder.typicode.com"`
	APIKey       string        `mapstructure:"api_key" env:"API_KEY"`
	Timeout      time.Duration `mapstructure:"timeout" env:"TIMEOUT" envDefault:"10s"`
	MaxWorkers   int           `mapstructure:"max_workers" env:"MAX_WORKERS" envDefault:"4"`
	JobQueueSize int           `mapstructure:"job_queue_size" env:"JOB_QUEUE_SIZE" envDefault:"64"`
}

type DirectoryServerConfig struct {
	Port          int  `mapstructure:"port" env:"PORT" envDefault:"8081"`
	PersistWrites bool `mapstructure:"persist_writes" env:"PERSIST_WRITES" envDefault:"false"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics" envPrefix:"METRICS_"`
	Tracing TracingConfig `mapstructure:"tracing" envPrefix:"TRACING_"`
	Logging LoggingConfig `mapstructure:"logging" envPrefix:"LOGGING_"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" env:"ENABLED" envDefault:"true"`
	Path    string `mapstructure:"path" env:"PATH" envDefault:"/metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled" env:"ENABLED"`
	ServiceName  string  `mapstructure:"service_name" env:"SERVICE_NAME" envDefault:"user-dashboard"`
	SamplingRate float64 `mapstructure:"sampling_rate" env:"SAMPLING_RATE" envDefault:"1"`
	Endpoint     string  `mapstructure:"endpoint" env:"ENDPOINT"`
	Insecure     bool    `mapstructure:"insecure" env:"INSECURE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" env:"LEVEL" envDefault:"info"`
	Format string `mapstructure:"format" env:"FORMAT" envDefault:"json"`
}

// LoadConfigFromEnv builds the configuration from environment variables,
// e.g. DIRECTORY_BASE_URL or OBSERVABILITY_LOGGING_LEVEL.
func LoadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// AllOperators returns the configured operators plus the one given through
// the operator_* keys, if any.
func (c *SecurityConfig) AllOperators() []OperatorConfig {
	ops := slices.Clone(c.Operators)
	if c.OperatorEmail != "" {
		ops = append(ops, OperatorConfig{
			Email:        c.OperatorEmail,
			Name:         c.OperatorName,
			PasswordHash: c.OperatorPasswordHash,
			Permissions:  c.OperatorPermissions,
		})
	}
	return ops
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Directory.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("directory config: %v", err))
	}

	if err := c.Observability.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("observability config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		for _, origin := range c.Origins() {
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *ServerConfig) Origins() []string {
	var out []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case "", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

// DriverName is the goose dialect and the database/sql driver.
func (c *DatabaseConfig) DriverName() (dialect, driver string) {
	if c.Driver == "sqlite" {
		return "sqlite3", "sqlite3"
	}
	return "postgres", "pgx"
}

func (c *SecurityConfig) Validate() error {
	if !c.AuthEnabled {
		return nil
	}
	if len(c.JWTAccessSecret) < 32 || len(c.JWTRefreshSecret) < 32 {
		return errors.New("jwt secrets must be at least 32 characters")
	}
	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return errors.New("access and refresh secrets must differ")
	}
	if c.AccessTokenDuration <= 0 || c.RefreshTokenDuration < c.AccessTokenDuration {
		return errors.New("refresh_token_duration must be >= access_token_duration > 0")
	}
	for _, op := range c.AllOperators() {
		if op.Email == "" || op.PasswordHash == "" {
			return errors.New("operators need an email and a password_hash")
		}
	}
	return nil
}

func (c *DirectoryConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	if c.MaxWorkers < 1 {
		return errors.New("max_workers must be at least 1")
	}
	if c.JobQueueSize < 1 {
		return errors.New("job_queue_size must be at least 1")
	}
	return nil
}

func (c *ObservabilityConfig) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return errors.New("tracing sampling_rate must be within [0, 1]")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics path must start with /")
	}
	return nil
}
