package router

import (
	"net/http"
	"time"

	"github.com/edupanel/examboard/internal/config"
	"github.com/edupanel/examboard/internal/handler"
	"github.com/edupanel/examboard/internal/middleware"
	"github.com/edupanel/examboard/internal/response"
	"github.com/edupanel/examboard/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(sessions *session.Manager, handlers *Handlers, cfg *config.Config) *gin.Engine {
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
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		// Logout stays public: clearing the session must always work,
		// even when it is already gone.
		auth.POST("/logout", handlers.Auth.Logout)
		auth.GET("/me", handlers.Auth.Me)
		auth.POST("/refresh", middleware.RequireSession(sessions), handlers.Auth.Refresh)
	}

	// ─── 2. Dashboard Group (Session Required) ─────────────────────────
	dash := router.Group("/api/v1/dashboard")
	dash.Use(middleware.RequireSession(sessions))
	{
		dash.GET("", handlers.Dashboard.GetDashboard)
		dash.GET("/exams/:id", handlers.Dashboard.GetExam)
	}

	return router
}
