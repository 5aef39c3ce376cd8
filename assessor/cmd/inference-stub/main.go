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

	"go.uber.org/zap"

	"github.com/Krimson/cardio-risk/assessor/internal/config"
	"github.com/Krimson/cardio-risk/assessor/internal/inference"
	"github.com/Krimson/cardio-risk/assessor/internal/observability"
)

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, "inference-stub")
	if err != nil {
		log.Fatalf("[FATAL] Failed to build logger: %v", err)
	}
	defer logger.Sync()

	server := &http.Server{
		Addr:         ":" + cfg.StubPort,
		Handler:      inference.NewStubHandler(logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Inference stub listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Stub server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("Stub forced to shutdown", zap.Error(err))
	}
	logger.Info("Inference stub stopped")
}
