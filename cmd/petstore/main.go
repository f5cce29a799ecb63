package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/gopetstore/petstore/internal/cart"
	"github.com/gopetstore/petstore/internal/cart/cache"
	cartrepo "github.com/gopetstore/petstore/internal/cart/repository"
	"github.com/gopetstore/petstore/internal/catalog"
	"github.com/gopetstore/petstore/internal/checkout"
	"github.com/gopetstore/petstore/internal/country"
	h "github.com/gopetstore/petstore/internal/http"
	"github.com/gopetstore/petstore/internal/orders"
	"github.com/gopetstore/petstore/internal/orders/publisher"
	"github.com/gopetstore/petstore/internal/refdata"
	"github.com/gopetstore/petstore/internal/session"
	"github.com/gopetstore/petstore/internal/shipping"
	"github.com/gopetstore/petstore/internal/tax"
)

// The designated domestic country: flat-rate regional shipping and the
// flat 10% tax rule apply only here.
const (
	domesticCountryCode = "AU"
	domesticCountryName = "Australia"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	RedisPassword   string
	MongoURI        string
	MongoDBName     string
	PostgresHost    string
	PostgresPort    int
	PostgresUser    string
	PostgresPass    string
	PostgresDB      string
	MigrationsDir   string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	pgPort, err := strconv.Atoi(getEnv("POSTGRES_PORT", "5432"))
	if err != nil {
		log.Fatalf("invalid POSTGRES_PORT: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "petstore"),
		PostgresHost:    getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:    pgPort,
		PostgresUser:    getEnv("POSTGRES_USER", "postgres"),
		PostgresPass:    getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:      getEnv("POSTGRES_DB", "petstore"),
		MigrationsDir:   getEnv("ORDERS_MIGRATIONS_DIR", "./internal/orders/migrations"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Reference data lives in memory, seeded once at startup.
	store := refdata.NewMemoryStore()
	refdata.SeedDemoData(store)

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

	mongoDB, err := cartrepo.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := cartrepo.CreateIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Failed to create cart indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	pgCreds := &orders.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPass,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.MigrationsDir,
	}
	orderRepo, err := orders.NewRepository(pgCreds)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(pgCreds); err != nil {
		log.Fatalf("Failed to run order migrations: %v", err)
	}
	log.Printf("Connected to postgres at %s:%d", cfg.PostgresHost, cfg.PostgresPort)

	sessions := session.NewRedisStore(redisClient)
	countries := country.NewService(store)
	cat := catalog.NewService(store)
	ship := shipping.NewCalculator(store, domesticCountryCode)
	taxes := tax.NewCalculator(domesticCountryCode, domesticCountryName, decimal.RequireFromString("0.10"))
	pipeline := checkout.NewPipeline(countries, cat, ship, taxes, domesticCountryCode)
	carts := cart.NewService(cartrepo.NewMongoRepository(mongoDB), cache.NewRedisCache(redisClient))

	petHandler := h.NewPetHandler(cat, countries, sessions)
	countryHandler := h.NewCountryHandler(countries, sessions)
	cartHandler := h.NewCartHandler(carts, cat, countries, sessions)
	checkoutHandler := h.NewCheckoutHandler(pipeline, ship, carts, orderRepo, sessions)

	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	poller := publisher.NewOutboxPoller(orderRepo, cfg.KafkaBrokers...)
	defer poller.Close()
	go poller.Run(pollerCtx)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pets", func(r chi.Router) {
			r.Get("/", petHandler.List)
			r.Get("/{id}", petHandler.Get)
		})
		r.Route("/countries", func(r chi.Router) {
			r.Get("/", countryHandler.List)
			r.Get("/current", countryHandler.Current)
			r.Put("/current", countryHandler.Select)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{pet_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.Clear)
		})
		r.Get("/shipping/methods", checkoutHandler.ShippingMethods)
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/validate", checkoutHandler.Validate)
			r.Post("/", checkoutHandler.Commit)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", checkoutHandler.ListOrders)
			r.Get("/{order_number}", checkoutHandler.GetOrder)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Petstore starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
