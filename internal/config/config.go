package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Драйверы базы данных
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Export   ExportConfig
	CORS     CORSConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig содержит настройки подключения к базе данных хоста
type DatabaseConfig struct {
	// Driver: "postgres" (по умолчанию) или "sqlite"
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path: файл базы для драйвера sqlite
	Path string
	// TablePrefix: префикс таблиц хоста, по умолчанию "mdl_"
	TablePrefix string `mapstructure:"table_prefix"`
	// Migrate: применять миграции из MigrationsPath (только для dev-схемы)
	Migrate        bool
	MigrationsPath string `mapstructure:"migrations_path"`
	// LogLevel: silent, error, warn, info
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig содержит настройки Redis для ограничения частоты скачиваний.
// Пустой Addr отключает ограничение.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MaxRetries: Максимальное количество попыток переподключения (-1 - бесконечно)
	MaxRetries int `mapstructure:"max_retries"`

	// BlockCacheTTL: время жизни кеша списка викторин блока, 0 - без кеша
	BlockCacheTTL time.Duration `mapstructure:"block_cache_ttl"`
}

// SessionConfig содержит настройки проверки сессии хоста
type SessionConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	CookieName string `mapstructure:"cookie_name"`
}

// ExportConfig содержит настройки экспорта
type ExportConfig struct {
	// Path: путь эндпоинта скачивания, на который ссылается блок
	Path string
	// Formats: включенные форматы; пусто - все встроенные
	Formats []string
	// RateLimit: скачиваний на пользователя за RateWindow
	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
}

// CORSConfig содержит разрешенные источники (сайт LMS)
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 60)
	vip.SetDefault("database.driver", DriverPostgres)
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.table_prefix", "mdl_")
	vip.SetDefault("database.migrations_path", "migrations")
	vip.SetDefault("database.log_level", "warn")
	vip.SetDefault("session.cookie_name", "MoodleExportSession")
	vip.SetDefault("export.path", "/blocks/export_quiz/export")
	vip.SetDefault("export.rate_limit", 30)
	vip.SetDefault("export.rate_window", time.Minute)
	vip.SetDefault("redis.block_cache_ttl", 30*time.Second)

	// Привязка для секции Database
	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.path", "DATABASE_PATH")
	vip.BindEnv("database.table_prefix", "DATABASE_TABLE_PREFIX")
	vip.BindEnv("database.migrate", "DATABASE_MIGRATE")

	// Привязка для секции Redis
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	// Привязка для секции Session
	vip.BindEnv("session.secret", "SESSION_SECRET")
	vip.BindEnv("session.issuer", "SESSION_ISSUER")
	vip.BindEnv("session.audience", "SESSION_AUDIENCE")

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("export.formats", "EXPORT_FORMATS")
	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("Config file '%s' not found, using environment and defaults", configPath)
			} else {
				log.Printf("Warning: failed to read config file '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Списки из env приходят одной строкой через запятую
	cfg.Export.Formats = splitList(cfg.Export.Formats)
	cfg.CORS.AllowOrigins = splitList(cfg.CORS.AllowOrigins)

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Loaded configuration ---")
		log.Printf("Database Driver: %s", cfg.Database.Driver)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Table Prefix: %s", cfg.Database.TablePrefix)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Session Secret Set: %t", cfg.Session.Secret != "")
		log.Printf("Export Path: %s", cfg.Export.Path)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("----------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required (check SESSION_SECRET env var)")
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for the sqlite driver (check DATABASE_PATH env var)")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if !strings.HasPrefix(c.Export.Path, "/") {
		return fmt.Errorf("export path must be absolute, got %q", c.Export.Path)
	}
	return nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
