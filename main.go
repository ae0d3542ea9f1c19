// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hotel-reservation/cmd"
	"hotel-reservation/internal/data/memory"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/data/schema"
	"hotel-reservation/internal/notify"
	"hotel-reservation/internal/wire"
	"hotel-reservation/pkg/database"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	if err := run(config, logger); err != nil {
		logger.Error("Application stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(config *utils.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.App.StorageDriver),
		zap.Bool("debug", config.App.Debug),
	)

	repos, closeStorage, err := openStorage(ctx, config, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	// Notifications go out after commit and never block a request
	dispatcher := notify.NewDispatcher(repos.User, notify.NewSender(config.Email, logger), config.Notify, logger)
	dispatcher.Start()
	defer dispatcher.Close()

	// Wire all dependencies
	app, err := wire.Wiring(repos, dispatcher, config, logger)
	if err != nil {
		return err
	}

	return cmd.APIServer(ctx, app.Router, config.App, logger)
}

func openStorage(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	if config.App.StorageDriver == utils.StorageDriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewStore(logger).Repository(), func() {}, nil
	}

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := schema.Apply(ctx, db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	return repository.NewRepository(db, logger), db.Close, nil
}
