package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, environment string, middlewares ...gin.HandlerFunc) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares...)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.Register(router)
	return router
}
