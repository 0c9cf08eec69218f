package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/viewtube/backend/config"
	"github.com/viewtube/backend/internal/database"
)

// Standalone index sync. The server ensures indexes at startup too;
// this exists for running the sync against a database without booting
// the full API.
func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Disconnect(context.Background(), db)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
	log.Info("Indexes ensured")
}
