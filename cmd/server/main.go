package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/cache"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/catalog"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/config"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/engine"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/gateway"
	h "github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/http"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/publisher"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/repository"
	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Product catalog, optionally fronted by a redis cache.
	staticCatalog, err := catalog.LoadStatic(cfg.ProductsPath)
	if err != nil {
		log.Fatalf("Failed to load product catalog: %v", err)
	}
	var cat catalog.Catalog = staticCatalog

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		cat = cache.NewCachedCatalog(staticCatalog, cache.NewRedisCache(redisClient))
	}

	// Optional durable store behind the in-memory repository.
	var store repository.DurableStore
	if cfg.MongoURI != "" {
		mongoDB, errMongo := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if errMongo != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", errMongo)
		}
		defer mongoDB.Client().Disconnect(ctx)
		store = repository.NewMongoStore(mongoDB)
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)
	} else {
		log.Printf("No MONGO_URI set, running with in-memory storage only")
	}

	// Remote basket gateway, selected once at startup.
	var gw gateway.Gateway = gateway.Disabled{}
	if cfg.UseSCAPI {
		gwCfg, errCfg := gateway.ConfigFromEnv()
		if errCfg != nil {
			log.Printf("Remote basket gateway disabled: %v", errCfg)
		} else {
			gw = gateway.NewClient(gwCfg)
			log.Printf("Remote basket gateway enabled for %s", gwCfg.Host)
		}
	}

	var events service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		orderPublisher := publisher.NewOrderPublisher(cfg.KafkaBrokers...)
		defer orderPublisher.Close()
		events = orderPublisher
		log.Printf("Order events enabled on %v", cfg.KafkaBrokers)
	}

	repo := repository.NewMemoryRepository(store)
	orders := service.NewOrderStore(store)
	eng := engine.New(gw)
	svc := service.NewCheckoutService(repo, cat, gw, eng, orders, events)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	handler := h.NewCheckoutHandler(svc, cfg.RequestTimeout)
	router.Route("/", handler.Routes)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: otelhttp.NewHandler(router, "checkout-server"),
	}

	go func() {
		log.Printf("Checkout server listening on port %s", cfg.HTTPPort)
		if errServe := server.ListenAndServe(); errServe != nil && errServe != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", errServe)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down checkout server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Checkout server stopped")
}
