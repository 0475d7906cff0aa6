package internal

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT,default=3000"`

	LogLevel       string `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`

	// Both infrastructure dependencies are optional: an empty value runs
	// the process in degraded mode without that dependency.
	RedisURL     string `env:"REDIS_URL"`
	KafkaBrokers string `env:"KAFKA_BROKERS"`

	KafkaConsumerGroup string `env:"KAFKA_CONSUMER_GROUP,default=devconnect-group"`

	StoreTimeout      time.Duration `env:"STORE_TIMEOUT,default=5s"`
	CacheOpTimeout    time.Duration `env:"CACHE_OP_TIMEOUT,default=2s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
}

// Brokers splits the comma-separated broker list; empty when Kafka is not
// configured.
func (c Config) Brokers() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}

// GetLogger builds the process logger at the configured level, falling back
// to INFO on an unknown value.
func GetLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		l = slog.LevelDebug
	case "WARN":
		l = slog.LevelWarn
	case "ERROR":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
