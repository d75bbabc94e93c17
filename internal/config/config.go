package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	DatabaseURL     string
	DatabaseName    string
	DatabaseURLSet  bool
	DatabaseNameSet bool
	UniqueEmails    bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	UploadBackend  string
	UploadDir      string
	MaxUploadBytes int64
	MinIO          MinIOConfig

	SwaggerHost string
}

// MinIOConfig configures the object storage back-end for uploads.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory, when present, is loaded first and never
// overrides variables that are already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", getEnv("PORT", "8000")),
		DatabaseURL:     getEnv("DATABASE_URL", "mongodb://localhost:27017"),
		DatabaseName:    getEnv("DATABASE_NAME", "student_portal"),
		DatabaseURLSet:  os.Getenv("DATABASE_URL") != "",
		DatabaseNameSet: os.Getenv("DATABASE_NAME") != "",
		UniqueEmails:    getEnvBool("UNIQUE_EMAILS", false),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		UploadBackend:   getEnv("UPLOAD_BACKEND", "local"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 20<<20)),
		MinIO: MinIOConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "student-portal"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
