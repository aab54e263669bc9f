// Package config loads the application configuration from a YAML file with environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"qna/internal/domain/entity"
	envconfig "qna/pkg/config"
)

// Config is the root of the YAML document.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Stats    StatsConfig    `yaml:"stats"`
	Tracing  TracingConfig  `yaml:"tracing"`
	// Users are created on startup when missing.
	Users []UserConfig `yaml:"users"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// RequestTimeout bounds the context handed to handlers.
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

type SecurityConfig struct {
	PublicEndpoints []string        `yaml:"public_endpoints"`
	JWT             JWTConfig       `yaml:"jwt"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
	// CSPReportOnly sends the content security policy without enforcing it.
	CSPReportOnly   bool            `yaml:"csp_report_only"`
}

type JWTConfig struct {
	// SecretEnv names the environment variable holding the HMAC secret.
	SecretEnv   string `yaml:"secret_env"`
	ExpiryHours int    `yaml:"expiry_hours"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type StatsConfig struct {
	// Schedule is a robfig/cron spec, e.g. "@every 1m". Empty disables the job.
	Schedule string `yaml:"schedule"`
}

type TracingConfig struct {
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type UserConfig struct {
	UserID   string `yaml:"user_id"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  5 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Security: SecurityConfig{
			PublicEndpoints: []string{"/health", "/ready", "/live", "/metrics", "/auth/token"},
			JWT:             JWTConfig{SecretEnv: "JWT_SECRET", ExpiryHours: 1},
			RateLimit:       RateLimitConfig{RequestsPerSecond: 5, Burst: 10},
		},
		Stats:   StatsConfig{Schedule: "@every 1m"},
		Tracing: TracingConfig{ServiceName: "qna", SampleRatio: 1},
	}
}

// Load reads path on top of Default and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 -- path is provided by trusted source (CLI flag or env), not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = envconfig.GetEnvString("HTTP_ADDR", cfg.Server.Addr)
	cfg.Server.ShutdownTimeout = envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Security.JWT.ExpiryHours = envconfig.GetEnvInt("JWT_EXPIRY_HOURS", cfg.Security.JWT.ExpiryHours)
	cfg.Stats.Schedule = envconfig.GetEnvString("STATS_SCHEDULE", cfg.Stats.Schedule)
	cfg.Tracing.ServiceName = envconfig.GetEnvString("OTEL_SERVICE_NAME", cfg.Tracing.ServiceName)
	cfg.Tracing.SampleRatio = envconfig.GetEnvFloat("OTEL_TRACES_SAMPLER_ARG", cfg.Tracing.SampleRatio)
	cfg.Security.PublicEndpoints = envconfig.GetEnvStringList("PUBLIC_ENDPOINTS", cfg.Security.PublicEndpoints)
	cfg.Security.RateLimit.RequestsPerSecond = envconfig.GetEnvFloat("RATE_LIMIT_RPS", cfg.Security.RateLimit.RequestsPerSecond)
	cfg.Security.CSPReportOnly = envconfig.GetEnvBool("CSP_REPORT_ONLY", cfg.Security.CSPReportOnly)
	if !envconfig.GetEnvBool("STATS_ENABLED", true) {
		cfg.Stats.Schedule = ""
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server addr is required")
	}
	if err := envconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown_timeout: %w", err)
	}
	if err := envconfig.ValidateDurationRange(c.Server.RequestTimeout, 100*time.Millisecond, 5*time.Minute); err != nil {
		return fmt.Errorf("request_timeout: %w", err)
	}
	if c.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}
	if c.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}
	if c.Security.RateLimit.RequestsPerSecond < 0 || c.Security.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample_ratio must be within [0, 1]")
	}

	seen := make(map[string]bool, len(c.Users))
	for i, u := range c.Users {
		if err := entity.ValidateUserID(u.UserID); err != nil {
			return fmt.Errorf("users[%d]: %w", i, err)
		}
		if u.Password == "" {
			return fmt.Errorf("users[%d]: password is required", i)
		}
		if seen[u.UserID] {
			return fmt.Errorf("users[%d]: duplicate user_id %q", i, u.UserID)
		}
		seen[u.UserID] = true
	}
	return nil
}

// JWTSecret reads the secret from the configured environment variable.
func (c *Config) JWTSecret() ([]byte, error) {
	secret := os.Getenv(c.Security.JWT.SecretEnv)
	if len(secret) < 32 {
		return nil, fmt.Errorf("%s must be at least 32 bytes", c.Security.JWT.SecretEnv)
	}
	return []byte(secret), nil
}

// TokenTTL returns the token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Security.JWT.ExpiryHours) * time.Hour
}

// BootstrapUsers converts the configured users into entities.
func (c *Config) BootstrapUsers() []entity.User {
	users := make([]entity.User, 0, len(c.Users))
	for _, u := range c.Users {
		name := u.Name
		if name == "" {
			name = u.UserID
		}
		users = append(users, entity.NewUser(u.UserID, name, u.Password, u.Email))
	}
	return users
}
