package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Pool      PoolConfig
	Memory    MemoryConfig
	Summary   SummaryConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	TLSCertFile     string
	TLSKeyFile      string
	BodyLimit       string // echo size notation, e.g. "10M"
	AllowedOrigins  []string
	Environment     string
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type RedisConfig struct {
	// Enabled switches the /api rate limiter to Redis-backed windows.
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	Requests  int
	Window    time.Duration
	KeyPrefix string
}

type CacheConfig struct {
	MaxEntries int
}

type PoolConfig struct {
	MaxConnections int
	AcquireTimeout time.Duration
	CloseTimeout   time.Duration
	// StoreLatency is the simulated round-trip of one backing-store access.
	StoreLatency time.Duration
}

type MemoryConfig struct {
	PressureThreshold  float64 // percent of host memory in use
	SampleInterval     time.Duration
	OperationWarnBytes int64
	NotifierBuffer     int
}

type SummaryConfig struct {
	GenerationLatency time.Duration
}

type MetricsConfig struct {
	Namespace string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "5000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			TLSCertFile:     getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:      getEnv("TLS_KEY_FILE", ""),
			BodyLimit:       getEnv("SERVER_BODY_LIMIT", "10M"),
			AllowedOrigins:  getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			Environment:     getEnv("APP_ENV", "development"),
		},
		JWT: JWTConfig{
			Secret:   getEnvRequired("JWT_SECRET"),
			TokenTTL: getDurationEnv("JWT_TOKEN_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			Enabled:      getBoolEnv("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			Requests:  getIntEnv("RATE_LIMIT_REQUESTS", 100),
			Window:    getDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
			KeyPrefix: getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:client"),
		},
		Cache: CacheConfig{
			MaxEntries: getIntEnv("CACHE_MAX_ENTRIES", 100),
		},
		Pool: PoolConfig{
			MaxConnections: getIntEnv("POOL_MAX_CONNECTIONS", 10),
			AcquireTimeout: getDurationEnv("POOL_ACQUIRE_TIMEOUT", 5*time.Second),
			CloseTimeout:   getDurationEnv("POOL_CLOSE_TIMEOUT", 10*time.Second),
			StoreLatency:   getDurationEnv("STORE_SIMULATED_LATENCY", 0),
		},
		Memory: MemoryConfig{
			PressureThreshold:  getFloatEnv("MEMORY_PRESSURE_THRESHOLD", 85),
			SampleInterval:     getDurationEnv("MEMORY_SAMPLE_INTERVAL", 5*time.Second),
			OperationWarnBytes: getInt64Env("MEMORY_OPERATION_WARN_BYTES", 10*1024*1024),
			NotifierBuffer:     getIntEnv("MEMORY_NOTIFIER_BUFFER", 256),
		},
		Summary: SummaryConfig{
			GenerationLatency: getDurationEnv("SUMMARY_GENERATION_LATENCY", time.Second),
		},
		Metrics: MetricsConfig{
			Namespace: getEnv("METRICS_NAMESPACE", "study_assistant"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Memory.PressureThreshold <= 0 || c.Memory.PressureThreshold > 100 {
		return fmt.Errorf("MEMORY_PRESSURE_THRESHOLD must be in (0, 100], got %v", c.Memory.PressureThreshold)
	}
	if c.Memory.SampleInterval <= 0 {
		return fmt.Errorf("MEMORY_SAMPLE_INTERVAL must be positive, got %s", c.Memory.SampleInterval)
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be positive, got %d", c.Cache.MaxEntries)
	}
	if c.Pool.MaxConnections <= 0 {
		return fmt.Errorf("POOL_MAX_CONNECTIONS must be positive, got %d", c.Pool.MaxConnections)
	}
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimit.Requests)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
