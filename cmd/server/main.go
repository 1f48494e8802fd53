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

	"lexiguide/internal/config"
	"lexiguide/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wiring
	container := config.NewContainer(ctx, config.Options{})
	cfg := container.Config
	logger := container.Logger.WithComponent("http")

	authService := container.AuthService
	ownerMiddleware := handler.NewOwnerMiddleware(authService, logger)

	router := handler.NewRouter(handler.Handlers{
		Auth:       handler.NewAuthHandler(),
		Documents:  handler.NewDocumentHandler(container.DocumentService, cfg.GetMaxFileSize(), logger),
		Analyses:   handler.NewAnalysisHandler(container.AnalysisService, logger),
		Chat:       handler.NewChatHandler(container.ChatService, logger),
		Dictionary: handler.NewDictionaryHandler(container.DictionaryService, logger),
		Feedback:   handler.NewFeedbackHandler(container.FeedbackService, logger),
		Specialist: handler.NewSpecialistHandler(container.SpecialistService, logger),
	}, ownerMiddleware.Middleware, handler.RouterOptions{
		AllowedOrigins: cfg.GetCORSAllowedOrigins(),
		Metrics:        container.Metrics.Middleware,
		MetricsHandler: container.Metrics.Handler(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr, "auth", authService != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	container.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown failed", err)
	}
	if err := container.Close(shutdownCtx); err != nil {
		container.Logger.Error("Failed to release dependencies", err)
	}

	container.Logger.Info("Server exited")
}
