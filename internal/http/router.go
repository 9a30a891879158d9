package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/bulldozer-ai/bulldozer-backend/internal/http/handlers"
	httpMW "github.com/bulldozer-ai/bulldozer-backend/internal/http/middleware"
	"github.com/bulldozer-ai/bulldozer-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	ResearchHandler *httpH.ResearchHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestID())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.ResearchHandler != nil {
			api.GET("/projects", cfg.ResearchHandler.ListProjects)
			api.POST("/projects", cfg.ResearchHandler.CreateProject)
			api.GET("/projects/:id", cfg.ResearchHandler.GetProject)
			api.DELETE("/projects/:id", cfg.ResearchHandler.DeleteProject)
			api.GET("/projects/:id/sessions", cfg.ResearchHandler.ListProjectSessions)
			api.GET("/projects/:id/findings", cfg.ResearchHandler.ListProjectFindings)
			api.GET("/projects/:id/documents", cfg.ResearchHandler.ListProjectDocuments)

			api.GET("/sessions/:id/messages", cfg.ResearchHandler.ListSessionMessages)

			api.POST("/findings", cfg.ResearchHandler.CreateFinding)
			api.POST("/documents", cfg.ResearchHandler.CreateDocument)
		}
	}

	return r
}
