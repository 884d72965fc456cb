package handlers

import (
	"net/http"

	"github.com/boardhub/board_backend/cmd/docs"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/middleware"
	"github.com/boardhub/board_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// authLimiter guards the credential endpoints; nil disables rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	authLimiter *limiter.Limiter,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", getHome)

	registerChatRoutes(r, services.Chat, cfg.CORSAllowedOrigins)

	setupAPIV1Routes(r, services, authLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	authLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")
	authRequired := middleware.AuthMiddleware(services.Token)
	adminRequired := middleware.RequireAdmin(services.User)

	registerAuthRoutes(v1, services.Token, services.User, authRequired, authLimiter)
	registerUserRoutes(v1.Group("", authRequired), services.User)
	registerAdminRoutes(v1.Group("/admin", authRequired, adminRequired), services.User, services.Post)
	registerBoardRoutes(v1, services.Board, authRequired, adminRequired)
	registerPostRoutes(v1, services.Post, services.Search, authRequired)
	registerCommentRoutes(v1, services.Comment, authRequired)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
