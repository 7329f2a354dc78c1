// Package rest assembles the gin router with the application middleware chain
package rest

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/luminapower/propdeck/internal/api/v1"
	"github.com/luminapower/propdeck/internal/config"
	"github.com/luminapower/propdeck/internal/logger"
	"github.com/luminapower/propdeck/internal/rest/middleware"
	"github.com/luminapower/propdeck/internal/types"
)

// Handlers groups the route handlers wired into the router
type Handlers struct {
	Health   *v1.HealthHandler
	Proposal *v1.ProposalHandler
}

// NewRouter builds the HTTP router with the standard middleware chain
func NewRouter(cfg *config.Configuration, log *logger.Logger, handlers Handlers) *gin.Engine {
	if cfg.Logging.Level != types.LogLevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.RecoveryWithWriter(log.GetGinLogger()))
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.SentryMiddleware(cfg))
	router.Use(middleware.SentryRequestContextMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware)

	router.GET("/health", handlers.Health.Health)

	group := router.Group("/v1")
	group.POST("/proposals/render", handlers.Proposal.RenderProposal)

	return router
}
