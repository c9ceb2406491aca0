package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	Cache        CacheConfig
	Metrics      MetricsConfig
	Availability AvailabilityConfig
	Tracing      TracingConfig
	Events       EventsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig governs the Redis-backed roster cache.
type CacheConfig struct {
	Enabled     bool
	SuitableTTL time.Duration
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// AvailabilityConfig holds facility defaults applied when no settings row exists.
type AvailabilityConfig struct {
	AllowParallel   bool
	GlobalMaxPerDay int
	OpenTime        string
	CloseTime       string
	SlotStep        time.Duration
}

// TracingConfig configures the OTLP trace exporter.
type TracingConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	SampleRatio  float64
}

// EventsConfig configures appointment lifecycle publishing.
type EventsConfig struct {
	Enabled     bool
	Brokers     []string
	TopicPrefix string
	Workers     int
	Retries     int
	QueueSize   int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled:     v.GetBool("ENABLE_CACHE"),
		SuitableTTL: parseDuration(v.GetString("SUITABLE_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	globalMax := v.GetInt("AVAILABILITY_GLOBAL_MAX_PER_DAY")
	if globalMax < 0 {
		globalMax = 0
	}
	cfg.Availability = AvailabilityConfig{
		AllowParallel:   v.GetBool("AVAILABILITY_ALLOW_PARALLEL"),
		GlobalMaxPerDay: globalMax,
		OpenTime:        v.GetString("AVAILABILITY_OPEN_TIME"),
		CloseTime:       v.GetString("AVAILABILITY_CLOSE_TIME"),
		SlotStep:        parseDuration(v.GetString("AVAILABILITY_SLOT_STEP"), 30*time.Minute),
	}

	ratio := v.GetFloat64("OTEL_SAMPLING_RATIO")
	if ratio < 0 || ratio > 1 {
		ratio = 1
	}
	cfg.Tracing = TracingConfig{
		Enabled:      v.GetBool("OTEL_ENABLED"),
		ServiceName:  v.GetString("OTEL_SERVICE_NAME"),
		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SampleRatio:  ratio,
	}

	cfg.Events = EventsConfig{
		Enabled:     v.GetBool("ENABLE_EVENTS"),
		Brokers:     splitAndTrim(v.GetString("KAFKA_BROKERS")),
		TopicPrefix: v.GetString("EVENTS_TOPIC_PREFIX"),
		Workers:     v.GetInt("EVENTS_WORKERS"),
		Retries:     v.GetInt("EVENTS_RETRIES"),
		QueueSize:   v.GetInt("EVENTS_QUEUE_SIZE"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "pawcare_grooming")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("SUITABLE_CACHE_TTL", "5m")
	v.SetDefault("ENABLE_METRICS", true)

	v.SetDefault("AVAILABILITY_ALLOW_PARALLEL", false)
	v.SetDefault("AVAILABILITY_GLOBAL_MAX_PER_DAY", 0)
	v.SetDefault("AVAILABILITY_OPEN_TIME", "08:00")
	v.SetDefault("AVAILABILITY_CLOSE_TIME", "18:00")
	v.SetDefault("AVAILABILITY_SLOT_STEP", "30m")

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "pawcare-grooming-api")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_SAMPLING_RATIO", 1.0)

	v.SetDefault("ENABLE_EVENTS", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("EVENTS_TOPIC_PREFIX", "grooming")
	v.SetDefault("EVENTS_WORKERS", 2)
	v.SetDefault("EVENTS_RETRIES", 3)
	v.SetDefault("EVENTS_QUEUE_SIZE", 256)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
