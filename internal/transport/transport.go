package transport

import (
	"github.com/ds124wfegd/georaster/internal/pkg/requestid"
	"github.com/ds124wfegd/georaster/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(rasterHandler *RasterHandler, maxBodyBytes int64) *gin.Engine {
	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+requestid.Header)
		c.Header("Access-Control-Expose-Headers", requestid.Header+", "+headerRasterMin+", "+headerRasterMax)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/operations", rasterHandler.Operations)

		uploads := api.Group("", middleware.BodyLimit(maxBodyBytes))
		{
			uploads.POST("/arithmetic", rasterHandler.Arithmetic)
			uploads.POST("/adjust", rasterHandler.Adjust)
			uploads.POST("/info", rasterHandler.Info)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "georaster",
		})
	})
	return router
}
