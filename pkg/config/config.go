package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Resend   ResendConfig
	Storage  StorageConfig
	Queue    QueueConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type ResendConfig struct {
	APIKey string
	From   string
}

type StorageConfig struct {
	Bucket string
	Region string
}

type QueueConfig struct {
	User string
	Pass string
	Host string
	Port string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Resend: ResendConfig{
			APIKey: getEnv("RESEND_API_KEY", ""),
			From:   getEnv("EMAIL_FROM", "BlueKey Realty <noreply@bluekeyrealty.com>"),
		},
		Storage: StorageConfig{
			Bucket: getEnv("AWS_BUCKET_NAME", "bluekey-images"),
			Region: getEnv("AWS_REGION", "us-east-1"),
		},
		Queue: QueueConfig{
			User: getEnv("RABBITMQ_USER", "guest"),
			Pass: getEnv("RABBITMQ_PASS", "guest"),
			Host: getEnv("RABBITMQ_HOST", "localhost"),
			Port: getEnv("RABBITMQ_PORT", "5672"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
