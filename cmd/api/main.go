package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobly-relay/config"
	v1 "jobly-relay/internal/delivery/http/v1"
	"jobly-relay/internal/usecase"
	"jobly-relay/pkg/logger"
	"jobly-relay/pkg/telegram"
	"jobly-relay/pkg/validation"
)

// @title           Jobly Form Relay API
// @version         1.0
// @description     Forwards landing page job applications to a Telegram chat.
// @host            localhost:10000
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting form relay", "port", cfg.Port, "allowed_origins", cfg.AllowedOrigins)
	if !cfg.TelegramConfigured() {
		logger.Log.Warn("Telegram is not configured - form submissions will be answered with 500")
	}

	// 3. Setup Telegram client
	tgClient := telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramTimeout)

	// 4. Setup UseCases
	relayUC := usecase.NewRelayUsecase(cfg, tgClient, validation.New())
	healthUC := usecase.NewHealthUsecase()

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		RelayUC:  relayUC,
		HealthUC: healthUC,
		Config:   cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Listening", "url", "http://127.0.0.1:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
