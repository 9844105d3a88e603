package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"labelops/adapters/postgres"
	"labelops/domain/labeling"
	"labelops/internal"
	"labelops/internal/batch"
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

	csvPath := flag.String("csv", cfg.Seed.SamplesCSV, "path to the IMDB reviews CSV")
	limit := flag.Int("limit", cfg.Seed.SampleLimit, "maximum number of rows to load")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Error: %s not found: %v", *csvPath, err)
	}
	defer f.Close()

	fmt.Println("Loading IMDB dataset...")
	samples, err := seed.ReadSamples(f, *limit)
	if err != nil {
		log.Fatalf("Failed to read samples: %v", err)
	}
	fmt.Printf("Prepared %d samples for upload\n", len(samples))

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := postgres.NewSampleRepository(db)
	logger := internal.NewLogger(os.Stderr, internal.ParseLogLevel(cfg.LogLevel)).With("load-samples")

	res := batch.Write(ctx, samples, cfg.Seed.SampleBatchSize, repo.InsertBatch, logger, "samples")
	fmt.Printf("Successfully uploaded %d/%d samples (%d batches failed)\n",
		res.Inserted, res.Attempted, len(res.FailedBatches))

	for _, s := range []labeling.Sentiment{labeling.SentimentPositive, labeling.SentimentNegative} {
		n, err := repo.Count(ctx, s)
		if err != nil {
			logger.Warn("could not count %s samples: %v", s, err)
			continue
		}
		fmt.Printf("  %s: %d\n", s, n)
	}
}
