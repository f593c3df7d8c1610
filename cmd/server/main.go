package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"joblocator/internal/config"
	"joblocator/internal/handler"
	"joblocator/internal/llm"
	_ "joblocator/internal/llm/claude"
	_ "joblocator/internal/llm/gemini"
	_ "joblocator/internal/llm/openai"
	"joblocator/internal/logger"
	"joblocator/internal/router"
	"joblocator/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Fail fast on a missing credential or unknown provider
	client, err := llm.NewClient(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	extractionSvc, err := service.NewExtractionService(client, cfg.Extractor, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize extraction service: %w", err)
	}

	extractH := handler.NewExtractHandler(extractionSvc, zl)
	healthH := handler.NewHealthHandler(extractionSvc, cfg.Extractor.Provider)

	r := router.Setup(zl, cfg.CORS.AllowedOrigins, extractH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("provider", cfg.Extractor.Provider),
			zap.String("model", extractionSvc.Model()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
