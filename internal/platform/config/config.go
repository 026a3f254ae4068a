package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	MetricsAddr string
	// RegistryPath points at the YAML client registry loaded once at startup.
	RegistryPath string
	// SessionSigningKey validates the end-user session cookie credential.
	SessionSigningKey string
	PostgresDSN       string
	RedisURL          string
	KafkaBrokers      []string
	KafkaAuditTopic   string
	ShutdownTimeout   time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:            envOr("AUTHGATE_ADDR", ":8080"),
		MetricsAddr:     envOr("AUTHGATE_METRICS_ADDR", ":9090"),
		RegistryPath:    envOr("AUTHGATE_CLIENTS_FILE", "clients.yaml"),
		PostgresDSN:     os.Getenv("AUTHGATE_POSTGRES_DSN"),
		RedisURL:        os.Getenv("AUTHGATE_REDIS_URL"),
		KafkaAuditTopic: envOr("AUTHGATE_AUDIT_TOPIC", "authgate.audit"),
		ShutdownTimeout: 10 * time.Second,
	}
	if brokers := os.Getenv("AUTHGATE_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.SessionSigningKey = os.Getenv("AUTHGATE_SESSION_SIGNING_KEY")
	if cfg.SessionSigningKey == "" {
		// Development default; override in production.
		cfg.SessionSigningKey = "dev-secret-key-change-in-production"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
