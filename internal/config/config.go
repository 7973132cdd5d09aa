package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	YouTube   YouTubeConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
	Metrics   MetricsConfig
	History   HistoryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, file path
}

// YouTubeConfig holds fetch-layer configuration
type YouTubeConfig struct {
	ClientName     string
	ClientVersion  string
	InnertubeKey   string
	RequestTimeout time.Duration
}

// RedisConfig holds Redis configuration for the quota store
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds JWT authentication configuration
type AuthConfig struct {
	Enabled   bool
	JWTSecret string
}

// RateLimitConfig holds request throttling configuration
type RateLimitConfig struct {
	RPS          int
	Burst        int
	PerUserDaily int64
}

// TracingConfig holds Jaeger tracing configuration
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
}

// MetricsConfig holds the Prometheus metrics server configuration
type MetricsConfig struct {
	Enabled bool
	Port    int
}

// HistoryConfig holds the optional request audit log configuration
type HistoryConfig struct {
	Enabled     bool
	DatabaseURL string
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with only defaults applied, for
// callers that run without a config file (the CLI).
func Default() *Config {
	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		// Defaults always unmarshal; nothing user-supplied is involved.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &config
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.readTimeout", "30s")
	viper.SetDefault("server.writeTimeout", "30s")
	viper.SetDefault("server.shutdownTimeout", "10s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")

	// YouTube fetch defaults
	viper.SetDefault("youtube.clientName", "WEB")
	viper.SetDefault("youtube.clientVersion", "2.20240101.00.00")
	viper.SetDefault("youtube.innertubeKey", "")
	viper.SetDefault("youtube.requestTimeout", "20s")

	// Redis defaults
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Auth defaults
	viper.SetDefault("auth.enabled", false)
	viper.SetDefault("auth.jwtSecret", "")

	// Rate limit defaults
	viper.SetDefault("ratelimit.rps", 5)
	viper.SetDefault("ratelimit.burst", 10)
	viper.SetDefault("ratelimit.perUserDaily", 500)

	// Tracing defaults
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.serviceName", "caption-service")
	viper.SetDefault("tracing.endpoint", "http://localhost:14268/api/traces")

	// Metrics defaults
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.port", 9091)

	// History defaults
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.databaseURL", "")
}
