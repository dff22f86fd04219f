package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	NotifierConsole = "console"
	NotifierSMTP    = "smtp"
	NotifierNone    = "none"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TicketURL returns the public link to a ticket page.
func (s *ServerConfig) TicketURL(ticketID uint) string {
	return fmt.Sprintf("%s/tickets/%d/", strings.TrimRight(s.BaseURL, "/"), ticketID)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	BusyTimeoutMS   int    `mapstructure:"busy_timeout_ms"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the driver specific connection string.
// Timestamps are always read back as UTC.
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case DriverPostgres:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case DriverSQLite:
		return SQLiteDSN(d.SQLitePath, d.BusyTimeoutMS)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

// MigrateURL returns the golang-migrate database URL for postgres.
func (d *DatabaseConfig) MigrateURL() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("pgx5://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.Username), url.QueryEscape(d.Password), d.Host, d.Port, d.Database, sslMode)
}

// SQLiteDSN builds a file DSN that takes the write lock at BEGIN so that
// concurrent read-increment-write transactions queue on busy_timeout instead
// of failing with SQLITE_BUSY on lock upgrade.
func SQLiteDSN(path string, busyTimeoutMS int) string {
	if busyTimeoutMS <= 0 {
		busyTimeoutMS = 10000
	}
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_txlock=immediate&_foreign_keys=on", path, busyTimeoutMS)
}

type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	OutputPath  string `mapstructure:"output_path"`
	SourceLevel string `mapstructure:"source_level"`
}

type BusinessConfig struct {
	Timezone string `mapstructure:"timezone"`
	Locale   string `mapstructure:"locale"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type NotificationRedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Channel string `mapstructure:"channel"`
}

type NotificationConfig struct {
	Backend          string                  `mapstructure:"backend"`
	TimeoutSeconds   int                     `mapstructure:"timeout_seconds"`
	DepartmentEmails map[string]string       `mapstructure:"department_emails"`
	Redis            NotificationRedisConfig `mapstructure:"redis"`
}

func (n *NotificationConfig) Timeout() time.Duration {
	if n.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(n.TimeoutSeconds) * time.Second
}

// DepartmentEmail looks up a department mailbox. Viper lowercases map keys,
// so the lookup is case-insensitive.
func (n *NotificationConfig) DepartmentEmail(code string) string {
	if addr, ok := n.DepartmentEmails[code]; ok {
		return addr
	}
	return n.DepartmentEmails[strings.ToLower(code)]
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type AttachmentConfig struct {
	MaxSizeMB         int      `mapstructure:"max_size_mb"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

func (a *AttachmentConfig) MaxSizeBytes() int64 {
	return int64(a.MaxSizeMB) * 1024 * 1024
}

// RateLimitConfig throttles ticket writes per user. It needs redis.
type RateLimitConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	WritesPerMinute int  `mapstructure:"writes_per_minute"`
	WritesPerHour   int  `mapstructure:"writes_per_hour"`
}
