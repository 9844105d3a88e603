package main

import (
	"context"
	"log"
	"os"

	"labelops/adapters/postgres"
	"labelops/internal"
	"labelops/internal/analytics"
	"labelops/internal/config"
	"labelops/internal/database"
	"labelops/internal/migration"
	"labelops/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	logger := internal.NewLogger(os.Stderr, internal.ParseLogLevel(appConfig.LogLevel))

	db, err := database.Open(appConfig.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := migration.NewRunner().Run(context.Background(), db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	service := analytics.NewService(
		postgres.NewLabelerRepository(db),
		postgres.NewSampleRepository(db),
		postgres.NewLabelRepository(db),
	)

	server := ui.NewServer(service, postgres.NewRunRepository(db), logger)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
