package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/notify"
	"github.com/minseo-lab/daon/backend/internal/router"
	"github.com/minseo-lab/daon/backend/pkg/config"
	"github.com/minseo-lab/daon/backend/pkg/firebase"
	"github.com/minseo-lab/daon/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase messaging; push is optional and the server runs
	// without it when no credentials are configured
	var pusher notify.Pusher
	if cfg.FirebaseCredentialsPath != "" {
		ctx := context.Background()
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Printf("Firebase unavailable, push fallback disabled: %v", err)
		} else {
			pusher = firebaseApp
		}
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.MongoDB, pusher)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
