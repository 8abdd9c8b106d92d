package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	SERVER_ADDR    string
	LOG_LEVEL      string
	DATABASE_URL   string
	JWT_SECRET     string
	REFRESH_SECRET string
	ADMIN_USERNAME string
	ADMIN_PASSWORD string
	KAFKA_BROKERS  []string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	S3_BUCKET      string
	S3_REGION      string
	S3_KEY         string
	S3_SECRET      string
	S3_ENDPOINT    string
	S3_URL         string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		SERVER_ADDR:    EnvDefault("SERVER_ADDR", ":8080"),
		LOG_LEVEL:      EnvDefault("LOG_LEVEL", "info"),
		DATABASE_URL:   os.Getenv("DATABASE_URL"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),
		ADMIN_USERNAME: os.Getenv("ADMIN_USERNAME"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),
		KAFKA_BROKERS:  CSV(os.Getenv("KAFKA_BROKERS")),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		S3_BUCKET:      os.Getenv("S3_BUCKET"),
		S3_REGION:      EnvDefault("S3_REGION", "us-east-1"),
		S3_KEY:         os.Getenv("S3_KEY"),
		S3_SECRET:      os.Getenv("S3_SECRET"),
		S3_ENDPOINT:    os.Getenv("S3_ENDPOINT"),
		S3_URL:         os.Getenv("S3_URL"),
	}

	return config, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
