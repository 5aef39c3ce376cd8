package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - все настройки ассессора.
type Config struct {
	HTTPPort string
	GRPCPort string

	// Сервис инференса
	InferenceBaseURL string
	InferenceTimeout time.Duration // 0 = no client timeout

	// Хранилище записей, пустой DSN отключает историю
	PostgresDSN string

	// Кеш метрик модели, пустой адрес отключает кеширование
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	MetricsCacheTTL time.Duration

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string

	// Порт заглушки инференса
	StubPort string
}

// Load читает .env (если есть), затем окружение, с подстановкой значений по умолчанию.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort: getEnvString("HTTP_PORT", "8080"),
		GRPCPort: getEnvString("GRPC_PORT", "50051"),

		InferenceBaseURL: getEnvString("INFERENCE_BASE_URL", "http://localhost:5000"),
		InferenceTimeout: time.Duration(getEnvInt64("INFERENCE_TIMEOUT_MS", 0)) * time.Millisecond,

		PostgresDSN: getEnvString("POSTGRES_DSN", ""),

		RedisAddr:       getEnvString("REDIS_ADDR", ""),
		RedisPassword:   getEnvString("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		MetricsCacheTTL: time.Duration(getEnvInt("METRICS_CACHE_TTL_SECONDS", 3600)) * time.Second,

		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "json"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		StubPort: getEnvString("STUB_PORT", "5000"),
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
