package common

import "time"

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "auth-token"

// SessionTTL is the fixed validity window of a session token.
const SessionTTL = 8 * time.Hour

// RequestIDHeaderName is echoed on every HTTP response.
const RequestIDHeaderName = "X-Request-ID"
