package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"labelops/adapters/postgres"
	"labelops/domain/core"
	"labelops/domain/labeling"
	"labelops/internal"
	"labelops/internal/config"
	"labelops/internal/database"
	"labelops/internal/simulation"

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

	seed := flag.Int64("seed", cfg.Simulation.Seed, "RNG seed (deterministic)")
	confidence := flag.Float64("confidence", 0.95, "confidence level of the per-labeler accuracy interval")
	flag.Parse()

	logger := internal.NewLogger(os.Stderr, internal.ParseLogLevel(cfg.LogLevel))

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	labelerRepo := postgres.NewLabelerRepository(db)
	sampleRepo := postgres.NewSampleRepository(db)
	labelRepo := postgres.NewLabelRepository(db)
	runRepo := postgres.NewRunRepository(db)

	fmt.Println("Fetching labelers...")
	labelers, err := labelerRepo.List(ctx)
	if err != nil {
		log.Fatalf("Error fetching labelers: %v", err)
	}
	fmt.Printf("Found %d labelers\n", len(labelers))

	fmt.Println("Fetching text samples...")
	samples, err := sampleRepo.List(ctx)
	if err != nil {
		log.Fatalf("Error fetching samples: %v", err)
	}
	fmt.Printf("Found %d samples\n", len(samples))
	if len(samples) == 0 {
		log.Fatalf("Nothing to simulate: %v (run load-samples first)", core.ErrNoSamples)
	}

	if existing, err := labelRepo.Count(ctx); err == nil && existing > 0 {
		logger.Warn("labels table already holds %d rows; this run appends to them", existing)
	}

	simCfg := simulation.DefaultConfig()
	simCfg.Seed = *seed
	simCfg.BatchSize = cfg.Simulation.LabelBatchSize
	simCfg.MinLabelsPerSample = cfg.Simulation.MinLabels
	simCfg.MaxLabelsPerSample = cfg.Simulation.MaxLabels

	sim, err := simulation.NewSimulator(simCfg, rand.New(rand.NewSource(*seed)), logger)
	if err != nil {
		log.Fatalf("Invalid simulation configuration: %v", err)
	}

	run := &labeling.SimulationRun{ID: core.NewRunID(), Seed: *seed, StartedAt: time.Now()}

	fmt.Printf("Simulating labels (seed %d)...\n", *seed)
	labels, err := sim.Generate(labelers, samples, run.StartedAt)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	fmt.Printf("Uploading %d labels to database...\n", len(labels))
	res := sim.Persist(ctx, labelRepo, labels)

	run.Attempted = res.Attempted
	run.Inserted = res.Inserted
	run.FailedBatches = len(res.FailedBatches)
	run.FinishedAt = time.Now()
	if err := runRepo.Record(ctx, run); err != nil {
		logger.Warn("could not record simulation run %s: %v", run.ID, err)
	}

	printSummary(simulation.Summarize(labelers, samples, labels, simCfg.ComplexityPenalty, *confidence), res.Inserted, *confidence)
}

func printSummary(sum simulation.Summary, inserted int, confidence float64) {
	fmt.Println()
	fmt.Println("Simulation Summary")
	fmt.Println("------------------")
	fmt.Printf("Total labels created: %d (%d stored)\n", sum.TotalLabels, inserted)
	fmt.Printf("Correct labels:       %d\n", sum.Correct)
	fmt.Printf("Incorrect labels:     %d\n", sum.Incorrect)
	fmt.Printf("Overall accuracy:     %.2f%%\n", sum.OverallAccuracy*100)
	fmt.Printf("Avg labels/sample:    %.2f\n", sum.AvgLabelsPerSample)
	fmt.Println()

	fmt.Printf("%-20s %7s %9s %9s %21s\n", "Labeler", "Labels", "Observed", "Expected",
		fmt.Sprintf("%.0f%% interval", confidence*100))
	for _, ls := range sum.Labelers {
		note := ""
		if ls.Labels > 0 && !ls.WithinInterval {
			note = " (outside)"
		}
		fmt.Printf("%-20s %7d %8.2f%% %8.2f%%   [%6.2f%%, %6.2f%%]%s\n",
			ls.Name, ls.Labels, ls.ObservedAccuracy*100, ls.ExpectedAccuracy*100,
			ls.IntervalLow*100, ls.IntervalHigh*100, note)
	}
}
