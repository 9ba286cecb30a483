package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecoTrackAPI/handlers"
	"ecoTrackAPI/internal/kv"
	"ecoTrackAPI/middleware"
	"ecoTrackAPI/services"

	_ "net/http/pprof"
)

var (
	kvStore            kv.Store
	stateService       *services.EcoStateService
	marketplaceService *services.MarketplaceService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kvStore = openStorage(ctx)

	stateService = services.NewEcoStateService(kvStore)
	stateService.Hydrate(ctx)
	marketplaceService = services.NewMarketplaceService(stateService)

	middleware.InitPrometheus()
}

// openStorage picks the persistence backend from the environment. Storage is
// best-effort: any failure drops to the in-memory store so the app keeps
// working for the session.
func openStorage(ctx context.Context) kv.Store {
	backend := os.Getenv("ECOTRACK_STORAGE")
	if backend == "" {
		backend = "sqlite"
	}

	var store kv.Store
	var err error

	switch backend {
	case "memory":
		log.Println("Using in-memory storage (state is lost on exit)")
		return kv.NewMemory()
	case "redis":
		store, err = kv.NewRedis(os.Getenv("REDIS_URL"))
	case "postgres":
		store, err = kv.NewPostgres(ctx, os.Getenv("DATABASE_URL"))
	case "sqlite":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "ecotrack.db"
		}
		store, err = kv.NewSQLite(path)
	default:
		log.Printf("Unknown storage backend %q, falling back to memory", backend)
		return kv.NewMemory()
	}

	if err != nil {
		log.Printf("Warning: %s storage unavailable (%v), continuing memory-only", backend, err)
		return kv.NewMemory()
	}

	log.Printf("Connected to %s storage", backend)
	return store
}

func main() {
	defer func() {
		log.Println("Draining persistence queue...")
		stateService.Close()
		kvStore.Close()
	}()

	// Initialize handlers
	stateHandler := handlers.NewStateHandler(stateService)
	challengeHandler := handlers.NewChallengeHandler(stateService)
	cartHandler := handlers.NewCartHandler(stateService, marketplaceService)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceService)

	r := mux.NewRouter()

	go middleware.CleanupClients()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "ecoTrack-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/state", stateHandler.GetState).Methods("GET")
	api.HandleFunc("/state/events", stateHandler.StreamStateEvents).Methods("GET")

	api.HandleFunc("/survey", stateHandler.GetSurvey).Methods("GET")
	api.HandleFunc("/survey", stateHandler.UpdateSurvey).Methods("PUT")

	api.HandleFunc("/footprint", stateHandler.GetFootprint).Methods("GET")
	api.HandleFunc("/footprint/calculate", stateHandler.CalculateFootprint).Methods("POST")

	api.HandleFunc("/points", stateHandler.AddPoints).Methods("POST")
	api.HandleFunc("/streak/increment", stateHandler.IncrementStreak).Methods("POST")
	api.HandleFunc("/streak/reset", stateHandler.ResetStreak).Methods("POST")
	api.HandleFunc("/impact", stateHandler.UpdateEcoImpact).Methods("POST")
	api.HandleFunc("/results/bonus", stateHandler.ClaimResultsBonus).Methods("POST")

	api.HandleFunc("/challenges", challengeHandler.GetChallenges).Methods("GET")
	api.HandleFunc("/challenges/{id}/start", challengeHandler.StartChallenge).Methods("POST")
	api.HandleFunc("/challenges/{id}/progress", challengeHandler.UpdateProgress).Methods("PUT")
	api.HandleFunc("/challenges/{id}/complete", challengeHandler.CompleteChallenge).Methods("POST")

	api.HandleFunc("/marketplace", marketplaceHandler.GetMarketplace).Methods("GET")

	api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	api.HandleFunc("/cart", cartHandler.ClearCart).Methods("DELETE")
	api.HandleFunc("/cart/items", cartHandler.AddToCart).Methods("POST")
	api.HandleFunc("/cart/items/{id}", cartHandler.UpdateQuantity).Methods("PUT")
	api.HandleFunc("/cart/items/{id}", cartHandler.RemoveItem).Methods("DELETE")
	api.HandleFunc("/cart/checkout", cartHandler.Checkout).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
