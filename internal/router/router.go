package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ospteam/osp-backend/internal/config"
	"github.com/ospteam/osp-backend/internal/handler"
	"github.com/ospteam/osp-backend/internal/middleware"
	"github.com/ospteam/osp-backend/internal/model"
	"github.com/ospteam/osp-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Survey   *handler.SurveyHandler
	Response *handler.ResponseHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "x-api-key", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the public submission endpoint (30 per minute per IP).
	submitLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (API key ping) ──────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.GET("/verify", middleware.RequireAPIKey(cfg), func(c *gin.Context) {
			response.Success(c, http.StatusOK, gin.H{"message": "API key is valid."})
		})
	}

	// ─── 2. Participant Group (Public) ─────────────────────────────────
	participantAPI := router.Group("/api/v1")
	{
		participantAPI.GET("/surveys/:token", handlers.Survey.GetSurveyByToken)
		participantAPI.POST("/surveys/:token/responses",
			submitLimiter.Middleware(),
			handlers.Response.SubmitResponse,
		)
	}

	// ─── 3. Admin Group (API Key + Role) ───────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAPIKey(cfg),
		middleware.RequireRole(model.RoleAdmin),
	)
	{
		adminAPI.GET("/surveys", handlers.Survey.ListSurveys)
		adminAPI.POST("/surveys", handlers.Survey.CreateSurvey)
		adminAPI.PUT("/surveys/:id", handlers.Survey.UpdateSurvey)
		adminAPI.DELETE("/surveys/:id", handlers.Survey.DeleteSurvey)
		adminAPI.GET("/surveys/:id/responses", handlers.Response.GetResponsesBySurveyID)
	}

	return router
}
