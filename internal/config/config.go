// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ServiceConfig holds service identity and listener settings.
type ServiceConfig struct {
	Principal   string
	HTTPPort    string
	MetricsAddr string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// KafkaConfig holds Kafka publisher settings.
type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	TopicSegments string
}

// StreamConfig holds per-connection stream settings.
type StreamConfig struct {
	MaxMessageBytes int64
	WriteTimeout    time.Duration
}

// Configuration is the full service configuration.
type Configuration struct {
	Service ServiceConfig
	Log     LogConfig
	Kafka   KafkaConfig
	Stream  StreamConfig
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() *Configuration {
	return &Configuration{
		Service: ServiceConfig{
			Principal:   envOrDefault("SERVICE_PRINCIPAL", "svc-speaker-segmentation"),
			HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
			MetricsAddr: envOrDefault("METRICS_ADDR", ":9090"),
		},
		Log: LogConfig{
			Level:  envOrDefault("LOG_LEVEL", "info"),
			Format: envOrDefault("LOG_FORMAT", "json"),
		},
		Kafka: KafkaConfig{
			Enabled:       envBool("KAFKA_ENABLED", false),
			Brokers:       envList("KAFKA_BROKERS", nil),
			TopicSegments: envOrDefault("KAFKA_TOPIC_SEGMENTS", "interaction.transcript.segments"),
		},
		Stream: StreamConfig{
			MaxMessageBytes: envInt64("STREAM_MAX_MESSAGE_BYTES", 1024*1024),
			WriteTimeout:    envDuration("STREAM_WRITE_TIMEOUT", 10*time.Second),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
