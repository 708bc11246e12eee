package main

import (
	"fmt"
	"os"

	"todolist/internal/config"
	"todolist/internal/logging"
	"todolist/internal/storage"
	"todolist/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.DefaultConfigFileName)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	store, err := storage.Open(cfg.TasksFile, logger)
	if err != nil {
		fmt.Printf("failed to load tasks: %v\n", err)
		os.Exit(1)
	}

	if err := ui.Run(store, cfg, logger); err != nil {
		logger.Error("program exited with error", "err", err)
		logCloser.Close()
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Info("program exited")
}
