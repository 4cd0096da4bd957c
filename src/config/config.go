package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ledger backends selectable with LEDGER_BACKEND.
const (
	BackendSheets = "sheets"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type AppConfig struct {
	Port     string
	LogLevel string

	LedgerBackend string
	// Spreadsheet is a Google Sheets URL or a spreadsheet title.
	Spreadsheet           string
	GoogleCredentialsJSON string
	GoogleCredentialsFile string
	LedgerDatabasePath    string
	TabCacheTTL           time.Duration

	AllowedOrigins     []string
	MaxBodyBytes       int64
	RateLimitPerSecond float64
	RateLimitBurst     int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	Cfg = &AppConfig{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		LedgerBackend:         strings.ToLower(getEnv("LEDGER_BACKEND", BackendSheets)),
		Spreadsheet:           getEnv("SPREADSHEET", ""),
		GoogleCredentialsJSON: getSecretEnv("GOOGLE_CREDENTIALS_JSON"),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "service_account.json"),
		LedgerDatabasePath:    getEnv("LEDGER_DATABASE_PATH", "./ledger.db"),
		TabCacheTTL:           getEnvAsDuration("TAB_CACHE_TTL", 10*time.Minute),

		AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		MaxBodyBytes:       int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 30),

		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
	}

	switch Cfg.LedgerBackend {
	case BackendSheets, BackendSQLite, BackendMemory:
	default:
		log.Printf("WARNING: Unknown LEDGER_BACKEND '%s'. Using default %s.", Cfg.LedgerBackend, BackendSheets)
		Cfg.LedgerBackend = BackendSheets
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, LedgerBackend=%s, CredentialsFromEnv=%t",
		Cfg.Port, Cfg.LogLevel, Cfg.LedgerBackend, Cfg.GoogleCredentialsJSON != "")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

// getSecretEnv reads key without ever echoing its value.
func getSecretEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Printf("Environment variable %s not set", key)
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil && value > 0 {
		return value
	}
	log.Printf("Invalid number for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
