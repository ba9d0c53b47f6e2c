package config

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StorageDriverSQLX = "sqlx"
	StorageDriverGORM = "gorm"

	productionEnv = "production"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	ServerPort     string        `env:"SERVER_PORT"`
	AppEnv         string        `env:"APP_ENV" envDefault:"development"`
	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"sqlx"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"file://internal/database/migrations"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Сессия
	JWTSecret       string        `env:"JWT_SECRET,required"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	CookieName      string        `env:"COOKIE_NAME" envDefault:"token"`
	CookieSameSite  string        `env:"COOKIE_SAMESITE" envDefault:"lax"`
	HashConcurrency int           `env:"HASH_CONCURRENCY"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,https://notepadk.netlify.app"`

	// Настройки для MinIO, нужны только воркеру архивации
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"notes-archive"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`

	// Пустой URL отключает публикацию событий
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"note_events"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	// Значения по умолчанию, которые нельзя выразить тегом
	if cfg.ServerPort == "" {
		cfg.ServerPort = "5000"
	}
	if cfg.HashConcurrency == 0 {
		cfg.HashConcurrency = runtime.NumCPU()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageDriverSQLX, StorageDriverGORM:
	default:
		return fmt.Errorf("неизвестный STORAGE_DRIVER: %q (используйте %q или %q)", c.StorageDriver, StorageDriverSQLX, StorageDriverGORM)
	}
	if _, err := parseSameSite(c.CookieSameSite); err != nil {
		return err
	}
	if c.HashConcurrency < 0 {
		return fmt.Errorf("HASH_CONCURRENCY должен быть положительным, получено %d", c.HashConcurrency)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL должен быть положительным, получено %s", c.TokenTTL)
	}
	return nil
}

// IsProduction сообщает, запущено ли приложение в production-окружении
func (c *Config) IsProduction() bool {
	return c.AppEnv == productionEnv
}

// SameSite возвращает режим SameSite для сессионной cookie.
func (c *Config) SameSite() http.SameSite {
	mode, _ := parseSameSite(c.CookieSameSite)
	return mode
}

// ArchiveEnabled сообщает, заданы ли параметры объектного хранилища
func (c *Config) ArchiveEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKeyID != "" && c.MinioSecretAccessKey != ""
}

func parseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(s) {
	case "lax", "":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return http.SameSiteDefaultMode, fmt.Errorf("неизвестный COOKIE_SAMESITE: %q", s)
	}
}
