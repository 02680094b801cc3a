package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"smartfield/pkg/status"
)

type AppConfig struct {
	Port         string
	Timezone     string
	DBPath       string
	JWTSecret    string
	RequireAuth  bool
	StatusPolicy status.Policy
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:         get("PORT", "8080"),
		Timezone:     get("TZ", "UTC"),
		DBPath:       get("DB_PATH", "smartfield.db"),
		JWTSecret:    get("JWT_SECRET", "dev-secret-change-me"),
		RequireAuth:  get("REQUIRE_AUTH", "false") == "true",
		StatusPolicy: status.Policy(get("STATUS_POLICY", string(status.PolicySimple))),
	}
	if cfg.StatusPolicy != status.PolicySimple && cfg.StatusPolicy != status.PolicyWindowed {
		log.Printf("[cfg] unknown STATUS_POLICY %q, falling back to simple", cfg.StatusPolicy)
		cfg.StatusPolicy = status.PolicySimple
	}
	log.Printf("[cfg] port=%s db=%s policy=%s auth=%v", cfg.Port, cfg.DBPath, cfg.StatusPolicy, cfg.RequireAuth)
	return cfg
}
