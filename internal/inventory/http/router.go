package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	healthStatusOK        = "ok"
	healthStatusUnhealthy = "unhealthy"
)

type HealthChecker interface {
	Health() error
}

func RegisterRoutes(router *gin.Engine, handler *Handler, checker HealthChecker) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		fail(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "Not found")
	})

	router.GET("/", handler.Info)
	router.GET("/status", handler.Status)

	router.GET("/products", handler.ListProducts)
	router.POST("/products", handler.CreateProduct)
	router.GET("/products/:id", handler.GetProduct)
	router.PUT("/products/:id", handler.UpdateProduct)
	router.DELETE("/products/:id", handler.DeleteProduct)

	router.GET("/updates", handler.ListUpdates)
	router.POST("/updates", handler.CreateUpdate)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := checker.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": healthStatusUnhealthy})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": healthStatusOK})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
