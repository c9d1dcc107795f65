package main

import (
	"flag"
	"log"
	"os"

	"fleetrent/internal/config"
	"fleetrent/internal/fleet"
	"fleetrent/internal/logger"
	"fleetrent/internal/repository/textfile"
	"fleetrent/internal/ui"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Fleetrent...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Data configuration", "file", cfg.Data.File, "report_dir", cfg.Report.OutputDir)

	// Initialize persistence and manager state
	store := textfile.NewStore()
	manager := fleet.NewManager()

	snap, err := store.Load(cfg.Data.File)
	if err != nil {
		logger.Error("Failed to load data file", "file", cfg.Data.File, "error", err)
		log.Fatalf("Failed to load data file: %v", err)
	}
	manager.Restore(snap)

	// Run the interactive shell
	shell := ui.New(manager, store, cfg, os.Stdin, os.Stdout)
	if err := shell.Run(); err != nil {
		logger.Error("Shell terminated", "error", err)
		os.Exit(1)
	}
}
