package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey = "request_id"
	userIDKey    = "user_id"

	maxRequestIDLen = 128
)

// requestIDMiddleware echoes a sane client X-Request-ID or mints a new one.
func (s *HTTPServer) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func (s *HTTPServer) accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		s.metrics.ObserveRequest(c.Request.Method, route, strconv.Itoa(status), elapsed)
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// sessionMiddleware admits requests carrying a valid auth-token cookie and
// stores the account id under userIDKey.
func (s *HTTPServer) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNotAuthorized})
			return
		}

		claims, err := s.auth.Verify(token)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "session rejected", "reason", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNotAuthorized})
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}
