package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"venue-route-service/internal/adapters/cache"
	"venue-route-service/internal/adapters/repositories"
	"venue-route-service/internal/api"
	"venue-route-service/internal/api/handlers"
	"venue-route-service/internal/config"
	"venue-route-service/internal/platform/db"
	"venue-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQL, redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Local sqlite runs initialize and seed on startup; postgres is prepared by dbtool.
	if dialect == repositories.DialectSQLite {
		if err := initAndSeed(conn, dialect, cfg.SeedPath); err != nil {
			log.Fatal(err)
		}
	}

	checks := map[string]handlers.Check{"db": conn.PingContext}

	var repo ports.VenueRepository = repositories.NewSQLVenueRepository(conn, dialect)
	if cfg.RedisURL != "" {
		venueCache, err := cache.NewRedisVenueCache(cfg.RedisURL, cfg.VenueCacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer venueCache.Close()

		checks["redis"] = venueCache.Ping
		repo = cache.NewCachedVenueRepository(repo, venueCache)
		log.Printf("Venue cache enabled ttl=%s", cfg.VenueCacheTTL)
	}

	router := api.NewRouter(api.Deps{
		Repo:             repo,
		Checks:           checks,
		BatchConcurrency: cfg.BatchConcurrency,
		PlanRateLimit:    cfg.PlanRateLimit,
		PlanRateBurst:    cfg.PlanRateBurst,
	})

	log.Printf("Server listening addr=:%s driver=%s", cfg.Port, cfg.DBDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func initAndSeed(conn *sql.DB, d repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromFile(conn, d, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
