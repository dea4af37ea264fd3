package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort    string
	AppEnv     string
	APIBaseURL string
	DataDir    string
	UploadDir  string
	JWTSecret  string

	// Optional Postgres-backed persistence surface. When DBHost is empty
	// the file store under DataDir is used instead.
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:4000"),
		DataDir:    getEnv("DATA_DIR", "data"),
		UploadDir:  getEnv("UPLOAD_DIR", "public"),
		JWTSecret:  os.Getenv("SECRET_KEY"),
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
