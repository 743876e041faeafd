package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// The API keys themselves are not env vars: GoogleAPIKeyFile and
// OMDbAPIKeyFile point at local secret files read once at startup.
type Config struct {
	GuideURL    string
	SiteBaseURL string

	GoogleAPIKeyFile string
	OMDbAPIKeyFile   string

	CacheBackend  string // "file" or "postgres"
	CacheFilePath string
	OutputDir     string

	HTTPTimeoutMs int
	RateLimitMs   int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		GuideURL:    getEnv("GUIDE_URL", "https://www.athinorama.gr/cinema/guide/"),
		SiteBaseURL: getEnv("SITE_BASE_URL", "https://www.ti-paizei-tora.gr"),

		GoogleAPIKeyFile: getEnv("GOOGLE_API_KEY_FILE", "./google_api"),
		OMDbAPIKeyFile:   getEnv("OMDB_API_KEY_FILE", "./omdb_api"),

		CacheBackend:  strings.ToLower(getEnv("CACHE_BACKEND", "file")),
		CacheFilePath: getEnv("CACHE_FILE_PATH", "./cinema_database.json"),
		OutputDir:     getEnv("OUTPUT_DIR", "./public"),

		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 20000),
		RateLimitMs:   getEnvInt("RATE_LIMIT_MS", 1100),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "cinema_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// ReadKeyFile reads and trims an API key from a secret file. A missing or
// unreadable file is a startup-fatal condition for the caller to enforce.
func ReadKeyFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
