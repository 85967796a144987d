package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env     string
	APIPort string

	JWTSecret    []byte
	JWTAlgorithm string
	TokenExpiry  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	CORSOrigins []string
}

// Load reads configuration from the environment, with .env support for
// local development. It returns a Config rather than populating a package
// global so the pieces that need it get it handed to them at startup.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Env:          getEnv("APP_ENV", "development"),
		APIPort:      getEnv("API_PORT", "8080"),
		JWTSecret:    []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTAlgorithm: getEnv("JWT_ALGORITHM", "HS256"),
		TokenExpiry:  time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 1440)) * time.Minute,
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "user"),
		DBPassword:   getEnv("DB_PASSWORD", "password"),
		DBName:       getEnv("DB_NAME", "tdsc_blog_db"),
		DBSslMode:    getEnv("DB_SSLMODE", "disable"),
		CORSOrigins:  strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
