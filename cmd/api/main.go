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
	_ "github.com/linskybing/engagement-go/docs"
	"github.com/linskybing/engagement-go/internal/api/handlers"
	"github.com/linskybing/engagement-go/internal/api/middleware"
	"github.com/linskybing/engagement-go/internal/api/routes"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/client/profile"
	"github.com/linskybing/engagement-go/internal/config"
	"github.com/linskybing/engagement-go/internal/config/db"
	"github.com/linskybing/engagement-go/internal/cron"
	"github.com/linskybing/engagement-go/internal/logger"
	"github.com/linskybing/engagement-go/internal/repository"
	"go.uber.org/zap"
)

// @title Engagement API
// @version 1.0
// @description Campaigns, offers and agreements between requesters and providers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	log := logger.Must(config.LogLevel, config.LogFile)
	defer func() { _ = log.Sync() }()

	// Initialize JWT signing key
	middleware.Init()

	if err := db.Init(log); err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.MigrateEngagement(db.DB); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	repos := repository.NewRepositories(db.DB)
	profiles := profile.NewHTTPClient(config.ProfileServiceURL, config.ServiceToken, config.ProfileTimeout, nil)
	svc := application.New(repos, profiles, log)

	jobs, err := cron.NewManager(log.Named("cron"))
	if err != nil {
		log.Fatal("failed to create scheduler", zap.Error(err))
	}
	if err := jobs.RegisterAuditRetention(svc.Audit, config.AuditRetentionDays, 24*time.Hour); err != nil {
		log.Warn("audit retention job not registered", zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(log.Named("http")))
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(config.CorsOrigins))

	routes.RegisterRoutes(router, handlers.New(svc))

	serve(log, ":"+config.ServerPort, router)
}

// serve runs the server until SIGINT or SIGTERM, then drains in-flight
// requests for up to ten seconds.
func serve(log *zap.Logger, addr string, h http.Handler) {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		log.Info("starting API server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	log.Info("shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
