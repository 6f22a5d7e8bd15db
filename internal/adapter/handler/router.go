package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/vidinsight/vidinsight/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	analyses *AnalysisController
	comments *CommentsController
	videos   *VideosController
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, analyses *AnalysisController, comments *CommentsController, videos *VideosController) *Router {
	return &Router{
		cfg:      cfg,
		analyses: analyses,
		comments: comments,
		videos:   videos,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/api/v1")

	// Setup route groups
	rt.setupAnalysisRoutes(v1)
	rt.setupVideoRoutes(v1)
}

// setupAnalysisRoutes configures analysis run, history and comment routes
func (rt *Router) setupAnalysisRoutes(g *echo.Group) {
	analysisGroup := g.Group("/analyses")

	analysisGroup.POST("", rt.analyses.CreateAnalysis)
	analysisGroup.GET("", rt.analyses.ListAnalyses)
	analysisGroup.GET("/:id", rt.analyses.GetAnalysis)
	analysisGroup.DELETE("/:id", rt.analyses.DeleteAnalysis)

	analysisGroup.GET("/:id/comments", rt.comments.ListComments)
	analysisGroup.GET("/:id/comments/search", rt.comments.SearchComments)
}

// setupVideoRoutes configures video discovery routes
func (rt *Router) setupVideoRoutes(g *echo.Group) {
	videoGroup := g.Group("/videos")

	videoGroup.GET("/search", rt.videos.SearchVideos)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
