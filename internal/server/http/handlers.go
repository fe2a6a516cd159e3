package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/common"
	"github.com/dmitrijs2005/nutriportal/internal/server/auth"
	"github.com/dmitrijs2005/nutriportal/internal/server/services"
	"github.com/dmitrijs2005/nutriportal/internal/server/validation"
	"github.com/gin-gonic/gin"
)

// Client-facing messages.
const (
	msgRegistered       = "Nutricionista cadastrado com sucesso"
	msgLoggedIn         = "Login realizado com sucesso"
	msgInvalidData      = "Dados inválidos"
	msgInvalidCreds     = "Credenciais inválidas"
	msgEmailTaken       = "Email já cadastrado"
	msgCRNTaken         = "CRN já cadastrado"
	msgInternal         = "Erro interno do servidor"
	msgNotAuthorized    = "Não autorizado"
	msgNotFound         = "Recurso não encontrado"
	msgMethodNotAllowed = "Método não permitido"
)

const healthTimeout = 2 * time.Second

// Register handles POST /api/register-nutricionista.
func (s *HTTPServer) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, validation.Malformed())
		return
	}

	if _, err := s.registrar.Register(c.Request.Context(), in); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msgRegistered})
}

// Login handles POST /api/login. On success the session token is delivered
// only as the auth-token cookie.
func (s *HTTPServer) Login(c *gin.Context) {
	var in services.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, validation.Malformed())
		return
	}

	res, err := s.auth.Login(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	http.SetCookie(c.Writer, auth.NewSessionCookie(res.Token, s.secureCookie))
	c.JSON(http.StatusOK, gin.H{
		"message": msgLoggedIn,
		"user":    res.Account,
	})
}

// Me handles GET /api/me behind sessionMiddleware.
func (s *HTTPServer) Me(c *gin.Context) {
	account, err := s.auth.Me(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		if common.KindOf(err) == common.KindUnauthorized {
			c.JSON(http.StatusUnauthorized, gin.H{"message": msgNotAuthorized})
			return
		}
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": account})
}

// Health handles GET /healthz.
func (s *HTTPServer) Health(c *gin.Context) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := s.pinger.PingContext(ctx); err != nil {
			s.logger.Warn(ctx, "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps a service error kind to a status code and body. Internal
// detail is never sent to the client.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	switch common.KindOf(err) {
	case common.KindValidation:
		var verr *common.ValidationError
		errors.As(err, &verr)
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidData, "errors": verr.Fields})
	case common.KindConflict:
		var cerr *common.ConflictError
		errors.As(err, &cerr)
		msg := msgEmailTaken
		if cerr.Field == "crn" {
			msg = msgCRNTaken
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": msg, "field": cerr.Field})
	case common.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidCreds})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	}
}
