package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bvester/matching-api/internal/database"
	"github.com/bvester/matching-api/internal/services"
	"github.com/bvester/matching-api/pkg/config"
)

func main() {
	fmt.Println("Bvester Automated Match Refresh Pipeline")
	fmt.Println("========================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Create match pipeline
	pipeline := services.NewMatchPipeline(db.DB, cfg)

	// Parse configuration from environment or use defaults
	pipelineConfig := parsePipelineConfig(cfg)

	fmt.Printf("Pipeline Configuration:\n")
	fmt.Printf("   - Batch Size: %d investors\n", pipelineConfig.BatchSize)
	fmt.Printf("   - Interval: %d minutes\n", pipelineConfig.IntervalMinutes)
	fmt.Printf("   - Max Concurrent: %d refreshes\n", pipelineConfig.MaxConcurrent)
	fmt.Printf("   - Refresh After: %d days\n", pipelineConfig.StaleDays)

	// Check if this is a one-time run
	if len(os.Args) > 1 && os.Args[1] == "--once" {
		fmt.Println("\nRunning one-time refresh cycle...")
		stats, err := pipeline.RunOnce(pipelineConfig)
		if err != nil {
			log.Fatalf("One-time refresh failed: %v", err)
		}

		fmt.Printf("\nOne-time refresh completed!\n")
		fmt.Printf("   - Duration: %v\n", stats.Duration.Round(time.Second))
		fmt.Printf("   - Investors Found: %d\n", stats.InvestorsFound)
		fmt.Printf("   - Investors Processed: %d\n", stats.InvestorsProcessed)
		fmt.Printf("   - Investors Succeeded: %d\n", stats.InvestorsSucceeded)
		fmt.Printf("   - Investors Failed: %d\n", stats.InvestorsFailed)
		return
	}

	// Start the automated pipeline
	if err := pipeline.Start(pipelineConfig); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("\nAutomated match pipeline is running...")
	fmt.Println("Press Ctrl+C to stop gracefully")

	// Wait for shutdown signal
	<-sigChan
	fmt.Println("\nShutdown signal received, stopping pipeline...")

	// Stop the pipeline gracefully
	if err := pipeline.Stop(); err != nil {
		log.Printf("Error stopping pipeline: %v", err)
	} else {
		fmt.Println("Pipeline stopped successfully")
	}
}

// parsePipelineConfig parses pipeline configuration from environment variables
func parsePipelineConfig(cfg *config.Config) services.PipelineConfig {
	pipelineConfig := services.PipelineConfigFrom(cfg)

	// Override with pipeline-specific environment variables if present
	if val := os.Getenv("PIPELINE_BATCH_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			pipelineConfig.BatchSize = parsed
		}
	}

	if val := os.Getenv("PIPELINE_INTERVAL_MINUTES"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			pipelineConfig.IntervalMinutes = parsed
		}
	}

	if val := os.Getenv("PIPELINE_MAX_CONCURRENT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			pipelineConfig.MaxConcurrent = parsed
		}
	}

	if val := os.Getenv("PIPELINE_STALE_DAYS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			pipelineConfig.StaleDays = parsed
		}
	}

	return pipelineConfig
}
