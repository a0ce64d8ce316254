package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port int

	DatabaseURL string

	SessionSecret string

	PublicDir string
	UploadDir string

	LogLevel string
}

func Load() Config {
	return Config{
		Port: EnvIntDefault("SERVER_PORT", 3000),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		PublicDir: EnvDefault("PUBLIC_DIR", "public"),
		UploadDir: EnvDefault("UPLOAD_DIR", "public/images"),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),
	}
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
