package v1

import (
	"jobly-relay/config"
	_ "jobly-relay/docs" // registers the swagger spec
	"jobly-relay/internal/delivery/http/middleware"
	"jobly-relay/internal/domain"
	"jobly-relay/pkg/apperror"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	RelayUC  domain.RelayUsecase
	HealthUC domain.HealthUsecase
	Config   *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("not_found"))
	})

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)
	NewRelayHandler(api, deps.RelayUC)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
