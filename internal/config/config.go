package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Драйверы хранилища записей
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// ErrInvalidConfig возвращается из Validate
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
	Intake  IntakeConfig  `toml:"intake"`
	Chat    ChatConfig    `toml:"chat"`
	API     APIConfig     `toml:"api"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	APIPrefix       string   `toml:"api_prefix"`
	ReadTimeout     int      `toml:"read_timeout"`     // секунды
	WriteTimeout    int      `toml:"write_timeout"`    // секунды
	IdleTimeout     int      `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int      `toml:"shutdown_timeout"` // секунды
	CORSOrigins     []string `toml:"cors_origins"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | sqlite | memory

	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`

	SQLitePath string `toml:"sqlite_path"`

	MaxOpenConns    int `toml:"max_open_conns"`
	MaxIdleConns    int `toml:"max_idle_conns"`
	ConnMaxLifetime int `toml:"conn_max_lifetime"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type IntakeConfig struct {
	// StrictTransitions включает таблицу допустимых переходов статусов.
	// По умолчанию выключено: администратор может вернуть любой статус, например completed -> pending.
	StrictTransitions bool `toml:"strict_transitions"`
}

type ChatConfig struct {
	ScriptPath    string `toml:"script_path"` // пусто - встроенный сценарий
	TypingDelayMS int    `toml:"typing_delay_ms"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // секунды
}

// DSN строка подключения для lib/pq
func (s StorageConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.DBName, s.SSLMode)
}

func (c ChatConfig) TypingDelay() time.Duration {
	return time.Duration(c.TypingDelayMS) * time.Millisecond
}

func (c APIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Default значения, которые используются, если ключ отсутствует в файле
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			APIPrefix:       "/api/v1",
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			CORSOrigins:     []string{"*"},
		},
		Storage: StorageConfig{
			Driver:          DriverSQLite,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "realty_intake",
			SSLMode:         "disable",
			SQLitePath:      "intake.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "realty-intake",
		},
		Intake: IntakeConfig{
			StrictTransitions: false,
		},
		Chat: ChatConfig{
			TypingDelayMS: 1000,
		},
		API: APIConfig{
			BaseURL: "http://localhost:8080/api/v1",
			Timeout: 10,
		},
	}
}

// Load читает TOML-файл поверх значений по умолчанию, затем .env и переменные окружения INTAKE_*.
// Отсутствующий файл не ошибка: сервис поднимается на значениях по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	// .env опционален
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет значения переменными окружения (секреты и параметры деплоя)
func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}
	flag := func(key string, dst *bool) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, v)
		}
		*dst = b
		return nil
	}

	str("INTAKE_STORAGE_DRIVER", &c.Storage.Driver)
	str("INTAKE_DB_HOST", &c.Storage.Host)
	str("INTAKE_DB_USER", &c.Storage.User)
	str("INTAKE_DB_PASSWORD", &c.Storage.Password)
	str("INTAKE_DB_NAME", &c.Storage.DBName)
	str("INTAKE_DB_SSLMODE", &c.Storage.SSLMode)
	str("INTAKE_SQLITE_PATH", &c.Storage.SQLitePath)
	str("INTAKE_LOG_LEVEL", &c.Logs.Level)
	str("INTAKE_API_BASE_URL", &c.API.BaseURL)
	str("INTAKE_CHAT_SCRIPT", &c.Chat.ScriptPath)

	if v, ok := os.LookupEnv("INTAKE_CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = splitList(v)
	}

	for _, err := range []error{
		num("INTAKE_HTTP_PORT", &c.Server.HTTPPort),
		num("INTAKE_DB_PORT", &c.Storage.Port),
		flag("INTAKE_METRICS_ENABLED", &c.Metrics.Enabled),
		flag("INTAKE_STRICT_TRANSITIONS", &c.Intake.StrictTransitions),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Storage.Host == "" || c.Storage.DBName == "" {
			problems = append(problems, "storage.host and storage.dbname are required for postgres")
		}
		if c.Storage.Port <= 0 || c.Storage.Port > 65535 {
			problems = append(problems, fmt.Sprintf("storage.port %d out of range", c.Storage.Port))
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			problems = append(problems, "storage.sqlite_path is required for sqlite")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("unknown storage.driver %q", c.Storage.Driver))
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Server.APIPrefix != "" && !strings.HasPrefix(c.Server.APIPrefix, "/") {
		problems = append(problems, "server.api_prefix must start with /")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if c.Chat.TypingDelayMS < 0 {
		problems = append(problems, "chat.typing_delay_ms must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
