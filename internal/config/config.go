package config

import (
	"os"
	"time"
)

type Config struct {
	Port             string
	DatabaseURL      string
	StaticDir        string
	MenuFeed         string
	ReservationsFeed string

	// CartSyncInterval is how often in-memory carts are reconciled
	// against the persisted blobs.
	CartSyncInterval time.Duration

	// RenderSettle is how long the menu render debounce stays held
	// after a render completes.
	RenderSettle time.Duration
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		StaticDir:        getEnv("STATIC_DIR", "web"),
		MenuFeed:         getEnv("MENU_FEED", "web/data/menu-items.jsonc"),
		ReservationsFeed: getEnv("RESERVATIONS_FEED", "web/data/reservations.json"),
		CartSyncInterval: getDuration("CART_SYNC_INTERVAL", 2*time.Second),
		RenderSettle:     getDuration("RENDER_SETTLE", 500*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
