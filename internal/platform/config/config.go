package config

import (
	"os"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	Environment   string
	WalletDir     string
	ProofKey      string
	SelfIssuedTTL time.Duration
	CatalogTTL    time.Duration
}

const (
	defaultSelfIssuedTTL = 365 * 24 * time.Hour
	defaultCatalogTTL    = 24 * time.Hour
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:          getEnv("EDURAKSHA_ADDR", ":8080"),
		Environment:   getEnv("EDURAKSHA_ENV", "development"),
		WalletDir:     getEnv("EDURAKSHA_WALLET_DIR", "data"),
		ProofKey:      getEnv("EDURAKSHA_PROOF_KEY", "dev-proof-key-change-in-production"),
		SelfIssuedTTL: defaultSelfIssuedTTL,
		CatalogTTL:    defaultCatalogTTL,
	}

	if d, ok := getDuration("EDURAKSHA_SELF_ISSUED_TTL"); ok {
		cfg.SelfIssuedTTL = d
	}
	if d, ok := getDuration("EDURAKSHA_CATALOG_TTL"); ok {
		cfg.CatalogTTL = d
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}
