package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"venue-route-service/internal/adapters/repositories"
	"venue-route-service/internal/config"
	"venue-route-service/internal/platform/db"
)

// dbtool initializes the venue schema and loads the seed document into the
// database selected by DB_DRIVER.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()
	if cfg.DBDriver == "pgx" && strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required for DB_DRIVER=pgx")
	}

	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(conn, dialect, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, d repositories.Dialect, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database from %s...", seedPath)
	if err := repositories.SeedFromFile(conn, d, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
