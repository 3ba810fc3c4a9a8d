package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Kafka  KafkaConfig
	Observ ObservabilityConfig
	Worker WorkerConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	UploadDir string
}

type StoreConfig struct {
	// Backend is "memory" (volatile) or "file" (whole-file JSON snapshot).
	Backend string
	// File is the snapshot path used by the file backend.
	File string
}

type KafkaConfig struct {
	// Brokers empty disables event publishing entirely.
	Brokers        []string
	TopicApprovals string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type WorkerConfig struct {
	StockMonitorIntervalSeconds int
}

func Load() *Config {
	_ = godotenv.Load()

	monitorInterval, _ := strconv.Atoi(getEnv("STOCK_MONITOR_INTERVAL_SECONDS", "60"))

	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			Env:       getEnv("ENV", "development"),
			UploadDir: getEnv("UPLOAD_DIR", ""),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "memory"),
			File:    getEnv("STORE_FILE", "data/db.json"),
		},
		Kafka: KafkaConfig{
			Brokers:        brokers,
			TopicApprovals: getEnv("KAFKA_TOPIC_APPROVALS", "approval-events"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Worker: WorkerConfig{
			StockMonitorIntervalSeconds: monitorInterval,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, store=%s", cfg.Server.Env, cfg.Server.Port, cfg.Store.Backend)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
