package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Entitlement store kinds.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	LogLevel          string
	CORSAllowOrigin   []string
	DatabaseURL       string
	EntitlementStore  string
	SQLitePath        string
	CatalogPath       string
	PremiumPriceCents int
	PremiumCurrency   string
	PreviewCategories int
	PreviewResources  int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	store := normalizeStore(getEnv("ENTITLEMENT_STORE", ""), dbURL)

	if env == "production" && store == StoreMemory {
		log.Printf("ENTITLEMENT_STORE=memory in production; unlocks are lost on restart")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               env,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:       dbURL,
		EntitlementStore:  store,
		SQLitePath:        getEnv("SQLITE_PATH", "./data/entitlements.db"),
		CatalogPath:       getEnv("CATALOG_PATH", ""),
		PremiumPriceCents: getEnvInt("PREMIUM_PRICE_CENTS", 1999),
		PremiumCurrency:   strings.ToUpper(getEnv("PREMIUM_CURRENCY", "USD")),
		PreviewCategories: getEnvInt("PREVIEW_CATEGORIES", 2),
		PreviewResources:  getEnvInt("PREVIEW_RESOURCES", 2),
	}
}

// IsDevLike reports whether dev-only routes and fallbacks are allowed.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// Existing environment wins over file values.
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		log.Printf("config: %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeStore picks postgres when a DATABASE_URL is present and no store was named.
func normalizeStore(raw, dbURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return StorePostgres
	case "sqlite", "sqlite3":
		return StoreSQLite
	case "memory", "mem":
		return StoreMemory
	default:
		if strings.TrimSpace(dbURL) != "" {
			return StorePostgres
		}
		return StoreMemory
	}
}
