package app

import (
	"quiz_scoring_backend/docs"
	"quiz_scoring_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		quiz := api.Group("/quiz")
		{
			quiz.POST("/submissions", c.quiz.Submit)
			quiz.GET("/submissions/:id/records", c.quiz.SubmissionRecords)
			quiz.GET("/users/:userId/records", c.quiz.UserRecords)
		}
	}
}
