package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"labelops/adapters/postgres"
	"labelops/domain/labeling"
	"labelops/internal/config"
	"labelops/internal/database"
	"labelops/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	profiles := flag.String("profiles", cfg.Seed.LabelerProfiles, "YAML labeler roster (defaults to the built-in profiles)")
	flag.Parse()

	roster := seed.DefaultLabelers()
	if *profiles != "" {
		roster, err = loadProfiles(*profiles)
		if err != nil {
			log.Fatalf("Failed to load labeler profiles: %v", err)
		}
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLabelerRepository(db)

	ctx := context.Background()
	if existing, err := repo.Count(ctx); err == nil && existing > 0 {
		log.Printf("Warning: %d labelers already exist; new profiles are added alongside them", existing)
	}

	fmt.Println("Creating labeler profiles...")
	created, err := repo.CreateAll(ctx, roster)
	if err != nil {
		log.Fatalf("Error creating labelers: %v", err)
	}

	fmt.Printf("Successfully created %d labelers\n", len(created))
	counts := seed.CountByTier(created)
	for _, tier := range labeling.Tiers {
		fmt.Printf("  %-13s %d\n", tier+":", counts[tier])
	}
	for _, l := range created {
		fmt.Printf("  #%-3d %-20s accuracy=%.3f rate=%.1f/h $%.2f/h\n",
			l.ID, l.Name, l.BaseAccuracy, l.LabelsPerHour, l.HourlyRate)
	}
}

func loadProfiles(path string) ([]labeling.Labeler, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.ReadProfiles(f)
}
