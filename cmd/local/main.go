package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fnbridge/internal/config"
	"fnbridge/internal/middleware"
	"fnbridge/internal/userapi"
	"fnbridge/pkg/introspect"
	"fnbridge/pkg/metadata"
)

// maxBodySize mirrors the payload limit of the hosted platforms
const maxBodySize = 6 << 20

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ConfigureLogging(logrus.StandardLogger(), cfg); err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	fn, err := userapi.NewFunction(cfg, logrus.StandardLogger(), os.Stdout)
	if err != nil {
		logrus.Fatalf("Failed to initialize function: %v", err)
	}

	if cfg.Introspect.Enabled() {
		if _, err := introspect.Display(os.Stdout, fn.Info(), cfg.Introspect); err != nil {
			logrus.Fatalf("Failed to print function info: %v", err)
		}
		return
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logrus.StandardLogger(), fn.Info().Name))
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(optionsPaths(fn.Info())...))
	router.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	router.Use(middleware.RequestSizeLimit(maxBodySize))
	router.Any("/*path", fn.GinHandler())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	logrus.WithFields(logrus.Fields{
		"function": fn.Info().Name,
		"port":     cfg.Port,
		"mode":     cfg.Serverless.DeploymentMode(),
	}).Info("Local server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

// optionsPaths lists the declared paths that handle OPTIONS themselves
func optionsPaths(info metadata.FunctionInfo) []string {
	var paths []string
	for _, route := range info.Routes {
		if route.Method == http.MethodOptions {
			paths = append(paths, route.Path)
		}
	}
	return paths
}
