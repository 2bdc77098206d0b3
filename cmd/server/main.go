package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duarte-dev/birthday-notification-service/configs"
	storeadapter "github.com/duarte-dev/birthday-notification-service/internal/infrastructure/store"
	"github.com/duarte-dev/birthday-notification-service/internal/observability/metrics"
	"github.com/duarte-dev/birthday-notification-service/internal/usecases/sweep"
	"github.com/duarte-dev/birthday-notification-service/internal/usecases/user"
	"github.com/duarte-dev/birthday-notification-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	messengeradapter "github.com/duarte-dev/birthday-notification-service/internal/infrastructure/messenger"
)

func main() {
	if err := logger.InitializeLogger(false); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()

	logger.L().Info("Starting birthday notification service...")

	cfg, err := configs.NewConfig(".")
	if err != nil {
		logger.L().Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.L().Info("Configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("emailServiceURL", cfg.EmailServiceURL),
		zap.Int("maxRetries", cfg.MaxRetries),
		zap.Int("concurrencyLimit", cfg.ConcurrencyLimit),
	)

	userStore, err := storeadapter.NewPostgresUserStore(cfg.DatabaseURL)
	if err != nil {
		logger.L().Fatal("Failed to initialize user store", zap.Error(err))
	}
	logger.L().Info("User store initialized")

	sender := messengeradapter.NewEmailServiceMessenger(cfg.EmailServiceURL)

	scheduler := sweep.NewSweep(userStore, sender, configs.GetDispatchConfig())
	if err := scheduler.Start(); err != nil {
		logger.L().Fatal("Failed to start sweep scheduler", zap.Error(err))
	}

	userHandler := user.NewUser(userStore)

	srv := gin.Default()

	srv.Use(func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		if endpoint == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		metrics.HTTPRequestsTotal.WithLabelValues(endpoint, http.StatusText(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	})

	users := srv.Group(cfg.APIBasePath + "/user")
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	srv.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv,
	}

	go func() {
		logger.L().Info("HTTP server starting", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.L().Error("HTTP server ListenAndServe failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.L().Info("Received signal, shutting down gracefully...", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("HTTP server shutdown error", zap.Error(err))
	} else {
		logger.L().Info("HTTP server shut down successfully.")
	}

	// Stop scheduling new sweeps; in-flight deliveries run to their terminal
	// outcome (no cancellation mid-series).
	logger.L().Info("Waiting for running sweeps to drain...")
	<-scheduler.Stop().Done()
	logger.L().Info("Sweep scheduler stopped.")

	logger.L().Info("Birthday notification service shut down complete.")
}
