package main

import (
	"context"
	"log"
	"time"

	"crmportal/internal/config"
	"crmportal/internal/database"
	"crmportal/internal/repository"
)

// revoked sessions are kept this long for auditing
const revokedRetention = 30 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now().UTC()
	n, err := repository.NewSessionRepository(db).DeleteStale(ctx, now, now.Add(-revokedRetention))
	if err != nil {
		log.Fatalf("cleanup sessions failed: %v", err)
	}

	log.Printf("session cleanup completed: sessions=%d", n)
}
