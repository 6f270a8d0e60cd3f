package rest

import (
	"context"
	"log"
	"net/http"
	"os"

	"coveradvisor/internal/service"
	"coveradvisor/internal/transport/rest/handler"
	"coveradvisor/internal/transport/rest/middleware"
	"coveradvisor/internal/transport/ws"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	RecommendService *service.RecommendService
	RuleService      *service.RuleService
	IngestService    *service.IngestService
	ScrapeService    *service.ScrapeService
	CatalogService   *service.CatalogService
	WSHub            *ws.Hub

	// HealthCheck pings the backing stores; nil means report ok unconditionally.
	HealthCheck func(ctx context.Context) error
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	recommendHandler := handler.NewRecommendHandler(c.RecommendService)
	ruleHandler := handler.NewRuleHandler(c.RuleService)
	ingestHandler := handler.NewIngestHandler(c.IngestService)
	scrapeHandler := handler.NewScrapeHandler(c.ScrapeService)
	catalogHandler := handler.NewCatalogHandler(c.CatalogService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Root and health
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"running","service":"coveradvisor"}`))
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if c.HealthCheck != nil {
			if err := c.HealthCheck(r.Context()); err != nil {
				log.Printf("[Health] store ping failed: %v", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"degraded"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/recommendations", recommendHandler.Recommend).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/scrape", wsHandler.ScrapeWS).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/rules", ruleHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/rules", ruleHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/rules/{policyType}", ruleHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/rules/{policyType}", ruleHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/rules/{policyType}", ruleHandler.Delete).Methods("DELETE", "OPTIONS")

	adminRoutes.HandleFunc("/ingest/raw", ingestHandler.IngestRaw).Methods("POST", "OPTIONS")

	adminRoutes.HandleFunc("/scrape/companies", scrapeHandler.Trigger).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/scrape/status", scrapeHandler.Status).Methods("GET", "OPTIONS")

	adminRoutes.HandleFunc("/companies", catalogHandler.ListCompanies).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/companies", catalogHandler.AddCompany).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/products", catalogHandler.ListProducts).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
