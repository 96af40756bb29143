package routes

import (
	"net/http"
	"time"

	"homeserve/handlers"
	"homeserve/middleware"
	"homeserve/models"
	"homeserve/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register/client", hb.Auth.RegisterClientHandler)
		api.POST("/register/provider", hb.Auth.RegisterProviderHandler)
		api.POST("/login", hb.Auth.LoginHandler)
	}
}

// RegisterProviderRoutes registers provider discovery and profile endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public discovery endpoints.
		api.GET("", hb.Providers.ListProvidersHandler)
		api.GET("/search", hb.Providers.SearchProvidersHandler)
		api.GET("/service/:type", hb.Providers.ListByServiceHandler)
		api.GET("/id/:id", hb.Providers.GetProviderByIDHandler)

		// Profile mutations require an authenticated provider.
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.ClientRepo, hb.ProviderRepo))
		protected.Use(middleware.RequireRole(models.RoleProvider))
		protected.PATCH("/profile", hb.Providers.UpdateProfileHandler)
		protected.PUT("/availability", hb.Providers.UpdateAvailabilityHandler)
	}
}

// RegisterReservationRoutes registers the reservation ledger endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.AuthMiddleware(hb.ClientRepo, hb.ProviderRepo))
		api.POST("", middleware.RequireRole(models.RoleClient), hb.Reservations.CreateReservationHandler)
		api.GET("/mine", hb.Reservations.ListMineHandler)
		api.PUT("/:id/status", hb.Reservations.TransitionHandler)
	}
}

// RegisterReviewRoutes registers the review ledger endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		// Public read endpoints.
		api.GET("/provider/:providerId", hb.Reviews.ListForProviderHandler)
		api.GET("/search", hb.Reviews.SearchReviewsHandler)

		// Mutations require an authenticated client.
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.ClientRepo, hb.ProviderRepo))
		protected.Use(middleware.RequireRole(models.RoleClient))
		protected.POST("", hb.Reviews.SubmitReviewHandler)
		protected.PATCH("/:id", hb.Reviews.UpdateReviewHandler)
		protected.DELETE("/:id", hb.Reviews.DeleteReviewHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r)
}
