package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brasas-pos/api/internal/config"
	"github.com/brasas-pos/api/internal/database"
	"github.com/brasas-pos/api/internal/handler"
	"github.com/brasas-pos/api/internal/pricing"
	"github.com/brasas-pos/api/internal/service"
	"github.com/brasas-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The POS runs on the restaurant LAN; every screen is trusted.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// WebSocket feed for the waiter and kitchen screens
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	engine := pricing.NewEngine(pricing.DefaultPriceTable())

	// Products
	productHandler := handler.NewProductHandler(queries, engine)
	r.Route("/products", productHandler.RegisterRoutes)

	// Orders
	newOrderStore := func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}
	orderService := service.NewOrderService(engine, pool, queries, newOrderStore)
	orderHandler := handler.NewOrderHandler(orderService, queries, hub)
	reportHandler := handler.NewReportHandler(queries)
	r.Route("/orders", func(r chi.Router) {
		r.Get("/today/summary", reportHandler.DailySummary)
		orderHandler.RegisterRoutes(r)
	})

	return r
}
