package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/studyprep/content-service/internal/config"
	"github.com/studyprep/content-service/internal/middleware"
	"github.com/studyprep/content-service/internal/remote"
	"github.com/studyprep/content-service/internal/services"
	"github.com/studyprep/content-service/internal/utils"
)

type HandlerManager struct {
	templateHandler *TemplateHandler
	proxyHandler    *ProxyHandler
}

func NewHandlerManager(
	templates services.TemplateService,
	importer services.ImportExportService,
	remoteClient *remote.Client,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		templateHandler: NewTemplateHandler(templates, importer, logger),
		proxyHandler:    NewProxyHandler(remoteClient, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(gin.Recovery())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "content-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg))
	{
		// Template editing routes
		templates := v1.Group("/templates")
		{
			templates.GET("/:kind/:id/questions", hm.templateHandler.GetQuestions)
			templates.POST("/:kind/:id/questions", hm.templateHandler.SaveQuestions)
			templates.GET("/:kind/:id/export", hm.templateHandler.ExportTemplate)
			templates.POST("/validate", hm.templateHandler.ValidateTemplate)
			templates.POST("/import", hm.templateHandler.ImportTemplate)
		}

		// Import job routes
		importJobs := v1.Group("/import-jobs")
		{
			importJobs.GET("", hm.templateHandler.ListImportJobs)
			importJobs.GET("/:id", hm.templateHandler.GetImportJob)
		}

		// Catalog pass-through routes. The dashboard edits templates locally
		// but manages catalog entities through the remote API.
		for _, resource := range remote.ProxyResources {
			group := v1.Group("/" + resource)
			group.Any("", hm.proxyHandler.Forward(resource))
			group.Any("/*rest", hm.proxyHandler.Forward(resource))
		}
	}
}
