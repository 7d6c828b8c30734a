package routes

import (
	"scholar-monitor-api/controllers"
	"scholar-monitor-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// Health check stays public
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Scholar Monitor API is running",
		})
	})

	// Every /api route requires HTTP Basic credentials
	api := router.Group("/api")
	api.Use(middleware.BasicAuthMiddleware(middleware.NewStaticVerifierFromEnv()))
	{
		scholars := api.Group("/scholars")
		{
			// Provider search and pass-through
			scholars.GET("", controllers.SearchScholars)
			scholars.GET("/aminer/:id/detail", controllers.GetScholarDetail)
			scholars.GET("/:id/papers", controllers.GetScholarPapers)
			scholars.GET("/:id/patents", controllers.GetScholarPatents)

			// Local persistence
			scholars.POST("", controllers.CreateScholar)
			scholars.GET("/list", controllers.ListScholars)
			scholars.GET("/:id", controllers.GetScholar)
			scholars.PUT("/:id", controllers.UpdateScholar)
			scholars.DELETE("/:id", controllers.DeleteScholar)
		}

		papers := api.Group("/papers")
		{
			papers.GET("", controllers.ListPapersByScholar)
			papers.POST("", controllers.CreatePaper)
			papers.POST("/batch", controllers.BatchCreatePapers)
			papers.GET("/list", controllers.ListPapers)
			papers.GET("/:id", controllers.GetPaper)
			papers.PUT("/:id", controllers.UpdatePaper)
			papers.DELETE("/:id", controllers.DeletePaper)
		}

		patents := api.Group("/patents")
		{
			patents.GET("", controllers.ListPatentsByScholar)
			patents.POST("", controllers.CreatePatent)
			patents.POST("/batch", controllers.BatchCreatePatents)
			patents.GET("/list", controllers.ListPatents)
			patents.GET("/:id", controllers.GetPatent)
			patents.PUT("/:id", controllers.UpdatePatent)
			patents.DELETE("/:id", controllers.DeletePatent)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/stats", controllers.GetDashboardStats)
		}

		api.GET("/activities", controllers.GetRecentActivities)
		api.GET("/sync-logs", controllers.ListSyncLogs)
	}
}
