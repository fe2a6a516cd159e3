package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler builds the gin engine with every route and middleware.
func (s *HTTPServer) Handler() http.Handler {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery(), s.requestIDMiddleware(), s.accessLogMiddleware())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": msgMethodNotAllowed})
	})

	router.GET("/healthz", s.Health)
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := router.Group("/api")
	{
		api.POST("/login", s.Login)
		api.POST("/register-nutricionista", s.Register)
		api.GET("/me", s.sessionMiddleware(), s.Me)
	}

	return router
}
