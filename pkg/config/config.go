package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// BatchMode disables currency detection and mutation entirely; the
	// resolver short-circuits to the default currency with no cookie
	// writes and no network calls. Meant for management/CLI contexts.
	BatchMode bool

	// Stored preference cookie.
	CurrencyCookieName   string
	CurrencyCookieDomain string
	CurrencyCookieMaxAge time.Duration

	// External providers.
	GeoProviderBaseURL string
	VATProviderURL     string
	HTTPClientTimeout  time.Duration

	// Staleness of durable ip2country cache entries.
	GeoCacheTTL time.Duration

	// Requests per period in ulule/limiter format, e.g. "120-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BATCH_MODE", false)
	viper.SetDefault("CURRENCY_COOKIE_NAME", "yoast_cart_currency")
	viper.SetDefault("CURRENCY_COOKIE_DOMAIN", "")
	viper.SetDefault("CURRENCY_COOKIE_MAX_AGE", "8760h") // 1 year
	viper.SetDefault("GEO_PROVIDER_BASE_URL", "https://freegeoip.net")
	viper.SetDefault("VAT_PROVIDER_URL", "http://jsonvat.com/")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "5s")
	viper.SetDefault("GEO_CACHE_TTL", "168h") // 7 days
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("FORCED_CURRENCY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.BatchMode = viper.GetBool("BATCH_MODE")

	cfg.CurrencyCookieName = viper.GetString("CURRENCY_COOKIE_NAME")
	cfg.CurrencyCookieDomain = viper.GetString("CURRENCY_COOKIE_DOMAIN")
	cfg.CurrencyCookieMaxAge = parseDurationOrDefault("CURRENCY_COOKIE_MAX_AGE", 365*24*time.Hour)

	cfg.GeoProviderBaseURL = viper.GetString("GEO_PROVIDER_BASE_URL")
	cfg.VATProviderURL = viper.GetString("VAT_PROVIDER_URL")
	cfg.HTTPClientTimeout = parseDurationOrDefault("HTTP_CLIENT_TIMEOUT", 5*time.Second)
	cfg.GeoCacheTTL = parseDurationOrDefault("GEO_CACHE_TTL", 7*24*time.Hour)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

// ForcedCurrency returns the forced currency code, if any. It is read fresh
// on every call (never cached) so runtime configuration changes take effect
// at the next decision point.
func ForcedCurrency() (string, bool) {
	code := viper.GetString("FORCED_CURRENCY")
	return code, code != ""
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
