package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/okkersen/skatt/internal/tax"
)

type Config struct {
	Env      string
	LogLevel string
	Tax      TaxConfig
}

// TaxConfig holds the calculation configuration consumed from the
// environment: the algorithm mode plus the default jurisdiction used when
// a quote carries no address. Store-scoped overrides are listed as
// "storeID=ALGORITHM" pairs.
type TaxConfig struct {
	Algorithm       string
	DefaultCountry  string
	DefaultRegion   string
	StoreAlgorithms map[string]string
	ExemptStores    []string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Tax: TaxConfig{
			Algorithm:       getEnv("TAX_ALGORITHM", string(tax.RowBase)),
			DefaultCountry:  getEnv("TAX_DEFAULT_COUNTRY", "US"),
			DefaultRegion:   getEnv("TAX_DEFAULT_REGION", ""),
			StoreAlgorithms: getEnvPairs("TAX_STORE_ALGORITHMS"),
			ExemptStores:    getEnvList("TAX_EXEMPT_STORES"),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	// The algorithm is load-bearing: an unknown value must fail fast, not
	// silently fall back to a different rounding mode.
	if _, err := tax.ParseAlgorithm(cfg.Tax.Algorithm); err != nil {
		return nil, fmt.Errorf("TAX_ALGORITHM: %w", err)
	}
	for store, alg := range cfg.Tax.StoreAlgorithms {
		if _, err := tax.ParseAlgorithm(alg); err != nil {
			return nil, fmt.Errorf("TAX_STORE_ALGORITHMS[%s]: %w", store, err)
		}
	}

	return cfg, nil
}

// TaxSettings converts the env configuration to engine settings.
func (c *Config) TaxSettings() tax.Settings {
	alg, _ := tax.ParseAlgorithm(c.Tax.Algorithm)

	stores := make(map[string]tax.StoreSettings)
	for store, raw := range c.Tax.StoreAlgorithms {
		salg, _ := tax.ParseAlgorithm(raw)
		st := stores[store]
		st.Algorithm = salg
		stores[store] = st
	}
	for _, store := range c.Tax.ExemptStores {
		st := stores[store]
		st.Exempt = true
		stores[store] = st
	}

	return tax.Settings{
		Algorithm:      alg,
		DefaultCountry: c.Tax.DefaultCountry,
		DefaultRegion:  c.Tax.DefaultRegion,
		Stores:         stores,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList parses a comma-separated environment value.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvPairs parses a comma-separated list of key=value pairs.
func getEnvPairs(key string) map[string]string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		if k, v, ok := strings.Cut(part, "="); ok {
			out[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return out
}
