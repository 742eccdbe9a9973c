package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizzical/internal/api"
	"quizzical/internal/app/service"
	"quizzical/internal/domain/repository"
	"quizzical/internal/platform/config"
	"quizzical/internal/platform/database"
	"quizzical/internal/platform/logging"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	config.Load()

	logger := logging.New()
	defer logger.Sync()
	logger.Info("Configuration loaded", zap.String("store_backend", config.AppConfig.StoreBackend))

	// 2. Initialize Stores
	var userRepo repository.UserRepository
	var questionRepo repository.QuestionRepository

	switch config.AppConfig.StoreBackend {
	case "postgres":
		database.Connect()
		defer database.Close()
		logger.Info("Database connected")
		userRepo = repository.NewPgUserRepository(database.DB)
		questionRepo = repository.NewPgQuestionRepository(database.DB)
	case "file":
		userRepo = repository.NewCsvUserRepository(config.AppConfig.UsersLocation)
		questionRepo = repository.NewExcelQuestionRepository(config.AppConfig.DataLocation)
	default:
		logger.Fatal("Unknown STORE_BACKEND", zap.String("store_backend", config.AppConfig.StoreBackend))
	}

	// 3. Initialize Services
	authService := service.NewAuthService(userRepo, config.AppConfig.BcryptPasswords)
	questionService := service.NewQuestionService(questionRepo, config.AppConfig.UniformSample)

	// 4. Initialize Router & HTTP Server
	router := api.NewRouter(config.AppConfig, authService, questionService, logger)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 5. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", zap.String("port", config.AppConfig.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Could not listen", zap.String("port", config.AppConfig.APIPort), zap.Error(err))
		}
	}()

	<-stop // Wait for interrupt signal

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
