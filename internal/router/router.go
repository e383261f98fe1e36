package router

import (
	"io"
	"net/http"
	"path"

	"github.com/gameday-grill/web/internal/cart"
	"github.com/gameday-grill/web/internal/catalog"
	"github.com/gameday-grill/web/internal/config"
	"github.com/gameday-grill/web/internal/handler"
	"github.com/gameday-grill/web/internal/menu"
	"github.com/gameday-grill/web/internal/reservations"
	"github.com/gameday-grill/web/internal/session"
	"github.com/gameday-grill/web/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a Chi router with the API, the websocket endpoint, and static
// page hosting wired up.
func New(cfg *config.Config, cat *catalog.Catalog, engine *menu.Engine, carts *cart.Manager, feed []reservations.Reservation, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Session-scoped routes. The session cookie only separates one
	// visitor's bag from another's; there is no authentication.
	r.Group(func(r chi.Router) {
		r.Use(session.Middleware)

		menuHandler := handler.NewMenuHandler(cat, engine)
		r.Route("/api/menu", menuHandler.RegisterRoutes)

		cartHandler := handler.NewCartHandler(carts)
		r.Route("/api/cart", cartHandler.RegisterRoutes)

		flowHandler := handler.NewFlowHandler(carts, cat)
		r.Route("/api/flows", flowHandler.RegisterRoutes)

		checkoutHandler := handler.NewCheckoutHandler(carts, cat)
		r.Route("/api/checkout", checkoutHandler.RegisterRoutes)

		reservationsHandler := handler.NewReservationsHandler(feed)
		r.Route("/api/reservations", reservationsHandler.RegisterRoutes)

		// WebSocket route (cart update signal for open views)
		r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWS(hub, w, r)
		})
	})

	// Everything else is static page hosting with a custom 404.
	r.NotFound(staticHandler(cfg.StaticDir))

	return r
}

// staticHandler serves page assets from dir. Extensionless paths resolve to
// .html files; anything unresolvable gets the 404 page with a 404 status.
func staticHandler(dir string) http.HandlerFunc {
	fs := http.Dir(dir)
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean(r.URL.Path)
		if name == "/" {
			name = "/index.html"
		}

		f, err := fs.Open(name)
		if err != nil && path.Ext(name) == "" {
			name += ".html"
			f, err = fs.Open(name)
		}
		if err != nil {
			serve404(w, r, fs)
			return
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil || stat.IsDir() {
			serve404(w, r, fs)
			return
		}

		http.ServeContent(w, r, path.Base(name), stat.ModTime(), f)
	}
}

func serve404(w http.ResponseWriter, r *http.Request, fs http.Dir) {
	f, err := fs.Open("/404.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	io.Copy(w, f)
}
