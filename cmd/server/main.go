package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"invana/internal/config"
	"invana/internal/handler"
	"invana/internal/parser/gemini"
	"invana/internal/port"
	"invana/internal/router"
	"invana/internal/service"
	"invana/internal/storage/local"
	s3storage "invana/internal/storage/s3"
	"invana/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	storage, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	configStore := store.NewConfigStore(storage, &cfg.Storage, &cfg.Store)
	clients := gemini.NewClientCache(&cfg.Gemini)
	analysisSvc := service.NewAnalysisService(configStore, storage, clients, &cfg.Storage, &cfg.Store, &cfg.Gemini)

	analysisH := handler.NewAnalysisHandler(analysisSvc)
	configH := handler.NewConfigHandler(configStore)
	healthH := handler.NewHealthHandler(configStore)

	r := router.Setup(cfg, analysisH, configH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func newStorage(cfg *config.Config) (port.ObjectStorage, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return s3storage.NewS3Client(&cfg.Storage)
	case "local", "":
		return local.NewLocalClient(cfg.Storage.LocalRoot), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
