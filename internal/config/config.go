// Package config loads application configuration from environment
// variables.  Required variables are enforced at startup: a missing
// value is a deploy error, not something to limp along without.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field maps to
// one environment variable.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	DataDir        string // directory for the file-backed mission store

	// Facebook Marketing API.
	FBAccessToken string // Graph API access token
	FBAdAccountID string // ad account id, "act_" prefix included
	FBPageID      string // page id used in creatives

	// Hosted checkout provider.
	CheckoutAPIKey      string // bearer token for the checkout API
	CheckoutBaseURL     string // checkout API base URL
	CheckoutRedirectURL string // where the member lands after paying
}

// Load reads configuration from the environment.  Required variables
// are enforced by must(); missing values exit with a fatal log.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		DataDir:        getenv("DATA_DIR", "./data"),

		// The ads and checkout integrations are optional in dev; the
		// handlers answer 502 when the upstream rejects empty creds.
		FBAccessToken: os.Getenv("FB_ACCESS_TOKEN"),
		FBAdAccountID: os.Getenv("FB_AD_ACCOUNT_ID"),
		FBPageID:      os.Getenv("FB_PAGE_ID"),

		CheckoutAPIKey:      os.Getenv("CHECKOUT_API_KEY"),
		CheckoutBaseURL:     getenv("CHECKOUT_BASE_URL", "https://api.checkout.example.com/v1"),
		CheckoutRedirectURL: getenv("CHECKOUT_REDIRECT_URL", "https://platform.toptiermen.eu/welcome"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
