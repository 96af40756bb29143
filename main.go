package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeserve/config"
	"homeserve/database"
	clientRepoPkg "homeserve/database/repository/client"
	providerRepoPkg "homeserve/database/repository/provider"
	reservationRepoPkg "homeserve/database/repository/reservation"
	reviewRepoPkg "homeserve/database/repository/review"
	"homeserve/handlers"
	"homeserve/middleware"
	"homeserve/routes"
	"homeserve/services/auth"
	"homeserve/services/provider"
	"homeserve/services/reservation"
	"homeserve/services/review"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// services.
	authService := &auth.DefaultAuthService{
		Clients:   clientRepo,
		Providers: providerRepo,
	}
	providerService := &provider.DefaultProviderService{
		Repo:  providerRepo,
		Cache: utils.GetCacheClient(),
	}
	reservationService := &reservation.DefaultReservationService{
		Repo:      reservationRepo,
		Clients:   clientRepo,
		Providers: providerRepo,
	}
	reviewService := &review.DefaultReviewService{
		Repo:         reviewRepo,
		Reservations: reservationRepo,
		Clients:      clientRepo,
		Providers:    providerRepo,
		Cache:        utils.GetCacheClient(),
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ClientRepo:   clientRepo,
		ProviderRepo: providerRepo,

		Auth:         handlers.NewAuthHandler(authService),
		Providers:    handlers.NewProviderHandler(providerService),
		Reservations: handlers.NewReservationHandler(reservationService),
		Reviews:      handlers.NewReviewHandler(reviewService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
