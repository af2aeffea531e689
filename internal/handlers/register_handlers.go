package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/openlibro/library_management_app/cmd/docs"
	portssvc "github.com/openlibro/library_management_app/internal/core/ports/services"
	"github.com/openlibro/library_management_app/internal/middleware"
	"github.com/openlibro/library_management_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route
	r.GET("/health", getHealth)

	// Public auth routes
	public := r.Group("/api/v1/users")
	registerPublicAuthRoutes(public, services.Auth, cfg)

	// Protected routes behind the access-token check
	protected := r.Group("/api/v1/users", middleware.AuthMiddleware(services.Auth))
	registerProtectedAuthRoutes(protected, services.Auth, cfg)
	registerBookRoutes(protected, services.Library)

	// Swagger routes (not exposed in production)
	setupSwaggerRoutes(r, cfg)
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
