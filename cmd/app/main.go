package main

import (
	"flag"
	"log"
	"os"

	"StarSpin/internal/di"
	"StarSpin/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	workerIndex := flag.Int("worker-index", -1, "override batch.worker_index")
	workerCount := flag.Int("worker-count", 0, "override batch.worker_count")
	listFile := flag.String("list", "", "override data.list_file")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *workerIndex >= 0 {
		cfg.Batch.WorkerIndex = *workerIndex
	}
	if *workerCount > 0 {
		cfg.Batch.WorkerCount = *workerCount
	}
	if *listFile != "" {
		cfg.Data.ListFile = *listFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid after flag overrides: %v", err)
	}

	log.Printf("env=%s mode=%s backend=%s", cfg.Environment, cfg.Mode, cfg.Output.Backend)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (batch runs to completion, worker blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
