package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var version = "dev"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting food catalog api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"version", version,
	)

	ctx := context.Background()

	// Initialize repository: postgres when configured, seeded memory otherwise
	var foodRepo repository.FoodRepository
	if cfg.Database.URL != "" {
		db, err := repository.ConnectPostgres(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		pgRepo := repository.NewPostgresFoodRepository(db)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Error("failed to initialize schema", "error", err)
			os.Exit(1)
		}
		foodRepo = pgRepo
		log.Info("using postgres storage")
	} else {
		foodRepo = repository.NewSeededFoodRepository()
		log.Info("using in-memory storage")
	}

	// Initialize services
	foodService := service.NewFoodService(foodRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, version)
	foodHandler := handlers.NewFoodHandler(foodService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration for browser dashboards
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// Food collection endpoints
	foodHandler.Routes(r)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
