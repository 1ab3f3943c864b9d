package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JwtSecret          string
	Issuer             string
	DbHost             string
	DbPort             string
	DbUser             string
	DbPassword         string
	DbName             string
	ServerPort         string
	MessagingPort      string
	ProfileServiceURL  string
	ProfileTimeout     time.Duration
	MatchServiceURL    string
	MatchTimeout       time.Duration
	ServiceToken       string
	LogLevel           string
	LogFile            string
	AuditRetentionDays int
	CorsOrigins        []string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "engagement")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "engagement")
	ServerPort = getEnv("SERVER_PORT", "8080")
	MessagingPort = getEnv("MESSAGING_PORT", "8081")

	ProfileServiceURL = getEnv("PROFILE_SERVICE_URL", "http://localhost:5001/api")
	ProfileTimeout = getEnvDuration("PROFILE_TIMEOUT", 3*time.Second)
	MatchServiceURL = getEnv("MATCH_SERVICE_URL", "http://localhost:8080")
	MatchTimeout = getEnvDuration("MATCH_TIMEOUT", 2*time.Second)
	ServiceToken = getEnv("SERVICE_TOKEN", "")

	LogLevel = getEnv("LOG_LEVEL", "info")
	LogFile = getEnv("LOG_FILE", "")
	AuditRetentionDays = getEnvInt("AUDIT_RETENTION_DAYS", 30)
	CorsOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:,http://127.0.0.1:"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
