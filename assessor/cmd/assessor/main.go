package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	_ "github.com/Krimson/cardio-risk/assessor/docs"
	"github.com/Krimson/cardio-risk/assessor/internal/assessment"
	"github.com/Krimson/cardio-risk/assessor/internal/config"
	"github.com/Krimson/cardio-risk/assessor/internal/health"
	"github.com/Krimson/cardio-risk/assessor/internal/inference"
	"github.com/Krimson/cardio-risk/assessor/internal/observability"
	"github.com/Krimson/cardio-risk/assessor/internal/store"
	"github.com/Krimson/cardio-risk/assessor/internal/websocket"
)

// @title Cardio Risk Assessor API
// @version 1.0
// @description Validates health parameters, scores them with the remote inference service
// @description and classifies the probability into a cardiovascular risk tier.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, "assessor")
	if err != nil {
		log.Fatalf("[FATAL] Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting assessor",
		zap.String("http_port", cfg.HTTPPort),
		zap.String("grpc_port", cfg.GRPCPort),
		zap.String("inference_base_url", cfg.InferenceBaseURL),
		zap.Duration("inference_timeout", cfg.InferenceTimeout),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	healthServer := health.NewServer()

	client := inference.NewClient(cfg.InferenceBaseURL, cfg.InferenceTimeout, logger)
	healthServer.Register("inference", func(ctx context.Context) error {
		_, err := client.ModelMetrics(ctx)
		return err
	})

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	opts := []assessment.Option{assessment.WithNotifier(hub)}

	if cfg.PostgresDSN != "" {
		records, err := store.NewPostgresStoreFromDSN(cfg.PostgresDSN, logger)
		if err != nil {
			logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer records.Close()
		opts = append(opts, assessment.WithRecordStore(records))
		healthServer.Register("postgres", records.Ping)
		logger.Info("Prediction history enabled")
	} else {
		healthServer.Register("postgres", nil)
		logger.Info("POSTGRES_DSN not set, prediction history disabled")
	}

	if cfg.RedisAddr != "" {
		cache := store.NewRedisMetricsCache(
			store.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
			cfg.MetricsCacheTTL,
		)
		defer cache.Close()
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("Redis unavailable, model metrics will bypass the cache", zap.Error(err))
		}
		opts = append(opts, assessment.WithMetricsCache(cache))
		healthServer.Register("redis", cache.Ping)
	} else {
		healthServer.Register("redis", nil)
	}

	service := assessment.NewService(client, metrics, logger, opts...)

	router := mux.NewRouter()
	assessment.NewHTTPHandler(service, logger).RegisterRoutes(router)
	router.HandleFunc("/ws", hub.HandleWebSocket)
	router.Handle("/healthz", healthServer).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	grpcServer := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	address := fmt.Sprintf(":%s", cfg.GRPCPort)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("address", address), zap.Error(err))
	}

	serverErrChan := make(chan error, 2)
	go func() {
		logger.Info("HTTP server listening", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
	go func() {
		logger.Info("gRPC health server listening", zap.String("address", address))
		if err := grpcServer.Serve(listener); err != nil {
			serverErrChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		logger.Error("Server error", zap.Error(err))
	case sig := <-shutdownChan:
		logger.Info("Received signal, starting graceful shutdown", zap.String("signal", sig.String()))
	}

	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server forced to shutdown", zap.Error(err))
	}
	grpcStopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(grpcStopped)
	}()
	select {
	case <-grpcStopped:
	case <-shutdownCtx.Done():
		logger.Warn("Graceful gRPC shutdown timed out, forcing stop")
		grpcServer.Stop()
	}
	cancel()

	logger.Info("Assessor stopped")
}
