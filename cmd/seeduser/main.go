package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mindhaven/mindhaven-backend/internal/auth"
	"github.com/mindhaven/mindhaven-backend/internal/config"
	"github.com/mindhaven/mindhaven-backend/internal/database"
)

// Seeds the demo account used for local testing. Safe to run repeatedly.
func main() {
	var (
		email    = flag.String("email", envOr("DEMO_USER_EMAIL", "demo@example.com"), "Demo user email")
		password = flag.String("password", envOr("DEMO_USER_PASSWORD", "Password123"), "Demo user password")
		name     = flag.String("name", "Demo User", "Display name")
	)
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to generate password hash:", err)
	}

	ctx := context.Background()
	userID := uuid.New()

	query := `
		INSERT INTO users (id, email, password_hash, display_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`

	var resultID uuid.UUID
	err = db.GetContext(ctx, &resultID, query,
		userID, *email, hash, *name, time.Now(), time.Now())
	if err == sql.ErrNoRows {
		// Conflict path: the row already exists
		fmt.Printf("Demo user %s already exists, nothing to do.\n", *email)
		return
	}
	if err != nil {
		log.Fatal("Failed to insert demo user:", err)
	}

	fmt.Printf("Created demo user:\n")
	fmt.Printf("   Email: %s\n", *email)
	fmt.Printf("   Password: %s\n", *password)
	fmt.Printf("   ID: %s\n", resultID)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
