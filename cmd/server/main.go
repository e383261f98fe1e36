package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gameday-grill/web/internal/cart"
	"github.com/gameday-grill/web/internal/catalog"
	"github.com/gameday-grill/web/internal/config"
	"github.com/gameday-grill/web/internal/menu"
	"github.com/gameday-grill/web/internal/reservations"
	"github.com/gameday-grill/web/internal/router"
	"github.com/gameday-grill/web/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if present
	godotenv.Load()

	cfg := config.Load()

	cat, err := catalog.LoadFile(cfg.MenuFeed)
	if err != nil {
		log.Fatalf("Unable to load menu catalog: %v", err)
	}

	feed, err := reservations.LoadFile(cfg.ReservationsFeed)
	if err != nil {
		log.Fatalf("Unable to load reservations feed: %v", err)
	}

	ctx := context.Background()

	// Carts persist as one JSON blob per session key. Without a database
	// the blobs live in process memory only.
	var blobs cart.BlobStore = cart.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer pool.Close()

		pg := cart.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("Unable to prepare cart storage: %v", err)
		}
		blobs = pg
	}

	// Initialize WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	carts := cart.NewManager(blobs)
	carts.SetOnChange(func(sessionID string) {
		hub.BroadcastToSession(sessionID, ws.Event{Type: ws.EventCartUpdated})
	})
	carts.StartSync(ctx, cfg.CartSyncInterval)

	engine := menu.NewEngine(cat, cfg.RenderSettle)

	r := router.New(cfg, cat, engine, carts, feed, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
