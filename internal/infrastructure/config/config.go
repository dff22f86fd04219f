package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/aticket/internal/shared/config"
)

const envPrefix = "ATICKET"

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Business     sharedConfig.BusinessConfig     `mapstructure:"business"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	Email        sharedConfig.EmailConfig        `mapstructure:"email"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Attachments  sharedConfig.AttachmentConfig   `mapstructure:"attachments"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"rate_limit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configPath when set), then a .env file
// if present, then ATICKET_* environment variables. Later sources win.
func Load(env, configPath string) (*Config, error) {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", ModeForEnv(env))
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// ModeForEnv maps an environment name to a gin mode.
func ModeForEnv(env string) string {
	switch env {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Driver {
	case sharedConfig.DriverMySQL, sharedConfig.DriverPostgres:
	case sharedConfig.DriverSQLite:
		if c.Database.SQLitePath == "" {
			problems = append(problems, "database.sqlite_path is required for sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported database.driver %q", c.Database.Driver))
	}

	switch c.Notification.Backend {
	case sharedConfig.NotifierConsole, sharedConfig.NotifierSMTP, sharedConfig.NotifierNone:
	default:
		problems = append(problems, fmt.Sprintf("unsupported notification.backend %q", c.Notification.Backend))
	}

	if c.Server.Mode == "release" && (c.Auth.JWT.Secret == "" || c.Auth.JWT.Secret == defaultJWTSecret) {
		problems = append(problems, "auth.jwt.secret must be set in release mode")
	}
	if c.RateLimit.Enabled && c.RateLimit.WritesPerMinute <= 0 && c.RateLimit.WritesPerHour <= 0 {
		problems = append(problems, "rate_limit needs writes_per_minute or writes_per_hour when enabled")
	}
	if c.Attachments.MaxSizeMB <= 0 {
		problems = append(problems, "attachments.max_size_mb must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

const defaultJWTSecret = "change-me-in-production"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)

	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "aticket_dev")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.sqlite_path", "")
	v.SetDefault("database.busy_timeout_ms", 10000)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.source_level", "warn")

	v.SetDefault("business.timezone", "Europe/Rome")
	v.SetDefault("business.locale", "it")

	v.SetDefault("auth.jwt.secret", defaultJWTSecret)
	v.SetDefault("auth.jwt.issuer", "aticket")
	v.SetDefault("auth.jwt.access_exp_minutes", 60)

	v.SetDefault("notification.backend", sharedConfig.NotifierConsole)
	v.SetDefault("notification.timeout_seconds", 10)
	v.SetDefault("notification.redis.enabled", false)
	v.SetDefault("notification.redis.channel", "aticket:ticket:events")

	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_address", "noreply@aticket.local")
	v.SetDefault("email.from_name", "Ticketing")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.writes_per_minute", 20)
	v.SetDefault("rate_limit.writes_per_hour", 200)

	v.SetDefault("attachments.max_size_mb", 15)
	v.SetDefault("attachments.allowed_extensions", []string{"pdf", "jpg", "jpeg", "png", "xlsx", "docx", "txt"})
}
