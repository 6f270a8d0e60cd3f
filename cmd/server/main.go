package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coveradvisor/internal/cache"
	"coveradvisor/internal/config"
	"coveradvisor/internal/engine"
	"coveradvisor/internal/repository"
	"coveradvisor/internal/service"
	"coveradvisor/internal/transport/rest"
	"coveradvisor/internal/transport/ws"

	_ "coveradvisor/docs"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title CoverAdvisor API
// @version 1.0
// @description Rules-driven insurance needs calculator with a scraped product catalogue
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Log rule source settings
	ruleAPICfg := config.DefaultRuleAPIConfig()
	log.Printf("Rule source: %s", cfg.RuleSource)
	if cfg.RuleSource == "api" {
		if ruleAPICfg.IsEnabled() {
			log.Printf("  Rule API:  %s", ruleAPICfg.BaseURL)
		} else {
			log.Println("  Rule API:  NOT SET (fetches will fail)")
		}
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	ruleRepo := repository.NewRuleRepo(db)
	companyRepo := repository.NewCompanyRepo(db)
	productRepo := repository.NewProductRepo(db)
	featureRepo := repository.NewFeatureRepo(db)

	// Initialize caches
	ruleCache := cache.NewRuleSetCache(rdb, time.Duration(cfg.RuleCacheTTLSeconds)*time.Second)
	scrapeCache := cache.NewScrapeCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	ruleSvc := service.NewRuleService(ruleRepo, ruleCache)
	ingestSvc := service.NewIngestService(companyRepo, productRepo, featureRepo)
	catalogSvc := service.NewCatalogService(companyRepo, productRepo)

	scraper := service.NewScraperClient(time.Duration(cfg.ScraperTimeoutMS)*time.Millisecond, cfg.ScraperMaxRetries)
	scrapeSvc := service.NewScrapeService(companyRepo, ingestSvc, scraper, scrapeCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	scrapeSvc.SetBroadcaster(wsHub)

	// Select where active rules come from
	var source service.RuleSource
	switch cfg.RuleSource {
	case "store":
		source = ruleSvc
	case "file":
		source = service.NewFileRuleSource(cfg.RulesFile)
	case "api":
		source = service.NewRuleAPIClient(ruleAPICfg)
	default:
		source = service.NewStaticRuleSource(engine.BuiltinRules())
	}

	eng := engine.New(engine.Config{
		BestThreshold:   cfg.BandBest,
		MediumThreshold: cfg.BandMedium,
	})
	recommendSvc := service.NewRecommendService(source, eng)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		RecommendService: recommendSvc,
		RuleService:      ruleSvc,
		IngestService:    ingestSvc,
		ScrapeService:    scrapeSvc,
		CatalogService:   catalogSvc,
		WSHub:            wsHub,
		HealthCheck: func(ctx context.Context) error {
			if err := mongoClient.Ping(ctx, nil); err != nil {
				return err
			}
			return rdb.Ping(ctx).Err()
		},
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Printf("Admin auth: username=%s", cfg.AdminUsername)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/recommendations")
		log.Println("  GET/POST /v1/rules")
		log.Println("  GET/PUT/DELETE /v1/rules/{policyType}")
		log.Println("  POST /v1/ingest/raw")
		log.Println("  POST /v1/scrape/companies")
		log.Println("  GET  /v1/scrape/status")
		log.Println("  GET/POST /v1/companies")
		log.Println("  GET  /v1/products")
		log.Println("  WS  /v1/ws/scrape")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
