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
	"github.com/linskybing/engagement-go/internal/api/handlers"
	"github.com/linskybing/engagement-go/internal/api/middleware"
	"github.com/linskybing/engagement-go/internal/api/routes"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/client/match"
	"github.com/linskybing/engagement-go/internal/config"
	"github.com/linskybing/engagement-go/internal/config/db"
	"github.com/linskybing/engagement-go/internal/logger"
	"github.com/linskybing/engagement-go/internal/messaging"
	"github.com/linskybing/engagement-go/internal/repository"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	log := logger.Must(config.LogLevel, config.LogFile).Named("messaging")
	defer func() { _ = log.Sync() }()

	middleware.Init()

	if err := db.Init(log); err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.MigrateMessaging(db.DB); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	repos := repository.NewRepositories(db.DB)
	checker := match.NewHTTPChecker(config.MatchServiceURL, config.ServiceToken, config.MatchTimeout, nil)
	hub := messaging.NewHub(log.Named("hub"))
	svc := application.NewMessageService(repos, checker, hub, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(log.Named("http")))
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(config.CorsOrigins))

	routes.RegisterMessagingRoutes(router, handlers.NewMessaging(svc, hub))

	addr := ":" + config.MessagingPort
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info("starting messaging gate", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	log.Info("shutdown signal")

	// Hijacked websocket connections are not tracked by Shutdown; the
	// process exit closes them.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
