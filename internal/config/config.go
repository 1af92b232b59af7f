package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// StorageBackend способ хранения снимка состояния
type StorageBackend string

const (
	StoragePostgres StorageBackend = "postgres"
	StorageFile     StorageBackend = "file"
)

// KeepAliveOptions настройки пула соединений к API расписания
type KeepAliveOptions struct {
	Enabled             bool
	IdleTimeout         time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
}

type Config struct {
	Environment string

	// UpstreamURL адрес API расписания университета
	UpstreamURL string
	// BearerToken токен для запросов к API расписания
	BearerToken string
	// RefreshInterval период фонового обновления расписания
	RefreshInterval time.Duration
	// CacheTTL время жизни закэшированного ответа API
	CacheTTL  time.Duration
	KeepAlive KeepAliveOptions

	StorageBackend StorageBackend
	// DBDSN строка подключения к Postgres (для STORAGE_BACKEND=postgres)
	DBDSN string
	// StoragePath каталог локального хранилища (для STORAGE_BACKEND=file)
	StoragePath string

	// ICSExportPath путь для выгрузки видимой ленты в iCalendar,
	// пустая строка отключает выгрузку
	ICSExportPath string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		Environment:     os.Getenv("ENV"),
		UpstreamURL:     os.Getenv("SCHEDULE_UPSTREAM_URL"),
		BearerToken:     os.Getenv("SCHEDULE_BEARER_TOKEN"),
		RefreshInterval: durationEnv("SCHEDULE_REFRESH_INTERVAL", 15*time.Minute),
		CacheTTL:        durationEnv("SCHEDULE_CACHE_TTL", 5*time.Minute),
		KeepAlive: KeepAliveOptions{
			Enabled:             boolEnv("SCHEDULE_KEEPALIVE", true),
			IdleTimeout:         durationEnv("SCHEDULE_KEEPALIVE_IDLE_TIMEOUT", 90*time.Second),
			MaxIdleConns:        intEnv("SCHEDULE_KEEPALIVE_MAX_IDLE_CONNS", 10),
			MaxIdleConnsPerHost: intEnv("SCHEDULE_KEEPALIVE_MAX_IDLE_CONNS_PER_HOST", 5),
			MaxConnsPerHost:     intEnv("SCHEDULE_KEEPALIVE_MAX_CONNS_PER_HOST", 0),
		},
		StorageBackend: StorageBackend(os.Getenv("STORAGE_BACKEND")),
		DBDSN:          os.Getenv("DB_DSN"),
		StoragePath:    os.Getenv("STORAGE_PATH"),
		ICSExportPath:  os.Getenv("ICS_EXPORT_PATH"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = StoragePostgres
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = ".schedule-agent"
	}

	// Проверяем обязательные поля
	if cfg.UpstreamURL == "" {
		return nil, fmt.Errorf("SCHEDULE_UPSTREAM_URL is required but not set")
	}
	switch cfg.StorageBackend {
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for postgres storage but not set")
		}
	case StorageFile:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func intEnv(name string, def int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %d", name, raw, def)
		return def
	}
	return value
}

func boolEnv(name string, def bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %t", name, raw, def)
		return def
	}
	return value
}

func durationEnv(name string, def time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %s", name, raw, def)
		return def
	}
	return value
}
