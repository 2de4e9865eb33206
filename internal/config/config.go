package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Префикс переменных окружения, переопределяющих значения из файла
const envPrefix = "AUTOSOFT_"

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	StudentService StudentServiceConfig `toml:"student_service"`
	RateLimit      RateLimitConfig      `toml:"rate_limit"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"` // пусто - только stdout
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StudentServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RateLimitConfig лимит записей на пользователя; RPS = 0 отключает лимит
type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
}

// Load читает toml файл, применяет переменные окружения AUTOSOFT_* и валидирует результат
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "autosoft-planning",
		},
		StudentService: StudentServiceConfig{
			Timeout: 5,
		},
		RateLimit: RateLimitConfig{
			RPS:   5,
			Burst: 10,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	textVars := map[string]*string{
		"DB_HOST":             &c.Database.Host,
		"DB_USER":             &c.Database.User,
		"DB_PASSWORD":         &c.Database.Password,
		"DB_NAME":             &c.Database.DBName,
		"DB_SSLMODE":          &c.Database.SSLMode,
		"LOG_LEVEL":           &c.Logs.Level,
		"LOG_FILE":            &c.Logs.File,
		"STUDENT_SERVICE_URL": &c.StudentService.URL,
	}
	for key, dst := range textVars {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"HTTP_PORT": &c.Server.HTTPPort,
		"DB_PORT":   &c.Database.Port,
	}
	for key, dst := range intVars {
		v, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s must be an integer, got %q", ErrInvalidConfig, envPrefix, key, v)
		}
		*dst = n
	}

	if v, ok := lookup(envPrefix + "METRICS_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sMETRICS_ENABLED must be true or false, got %q", ErrInvalidConfig, envPrefix, v)
		}
		c.Metrics.Enabled = enabled
	}

	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port must be a valid TCP port (got %d)", c.Server.HTTPPort))
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server.shutdown_timeout must be positive")
	}
	for name, value := range map[string]string{
		"database.host":   c.Database.Host,
		"database.user":   c.Database.User,
		"database.dbname": c.Database.DBName,
	} {
		if value == "" {
			problems = append(problems, name+" is required")
		}
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		problems = append(problems, fmt.Sprintf("database.port must be a valid TCP port (got %d)", c.Database.Port))
	}
	if c.StudentService.URL == "" {
		problems = append(problems, "student_service.url is required")
	}
	if c.StudentService.Timeout <= 0 {
		problems = append(problems, "student_service.timeout must be positive")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		problems = append(problems, "rate_limit.rps and rate_limit.burst must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
