package auth

import (
	"net/http"

	"github.com/dmitrijs2005/nutriportal/internal/common"
)

// NewSessionCookie wraps token in the auth-token cookie: HttpOnly,
// SameSite=Lax, Max-Age of one session, Secure when secure is set.
func NewSessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(common.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
