package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPPort        string
	ProductsPath    string
	MongoURI        string // empty disables the durable store
	MongoDBName     string
	RedisAddr       string // empty disables the product cache
	RedisPassword   string
	KafkaBrokers    []string // empty disables order events
	UseSCAPI        bool
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ProductsPath:    getEnv("PRODUCTS_PATH", "data/products.json"),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDBName:     getEnv("MONGO_DB_NAME", "checkoutdb"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		UseSCAPI:        strings.ToLower(getEnv("USE_SCAPI", "true")) == "true",
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
