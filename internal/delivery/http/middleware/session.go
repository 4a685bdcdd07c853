package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/grandaincontri/incontri-backend/internal/usecase/auth"
)

const (
	// SessionCookie names the cookie carrying the session ID.
	SessionCookie = "incontri_session"

	// Gin context keys set by Resolve.
	CtxSessionID     = "session_id"
	CtxAuthenticated = "authenticated"
)

type SessionMiddleware struct {
	authUseCase *auth.AuthUseCase
	cookieTTL   int
	logger      *slog.Logger
}

func NewSessionMiddleware(authUseCase *auth.AuthUseCase, cookieTTLSeconds int, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		authUseCase: authUseCase,
		cookieTTL:   cookieTTLSeconds,
		logger:      logger,
	}
}

// Resolve attaches a session to every request: it reads the session cookie,
// minting a fresh ID when absent, and resolves the admin flag against the
// session store. A store error downgrades to unauthenticated rather than
// failing the request.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookie, sessionID, m.cookieTTL, "/", "", false, true)
		}
		c.Set(CtxSessionID, sessionID)

		authenticated, err := m.authUseCase.IsAuthenticated(c.Request.Context(), sessionID)
		if err != nil {
			m.logger.Warn("session resolution failed", slog.Any("error", err))
			authenticated = false
		}
		c.Set(CtxAuthenticated, authenticated)

		c.Next()
	}
}

// RequireAuth rejects requests whose session lacks the admin flag.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Devi inserire il codice per accedere.",
			})
			return
		}
		c.Next()
	}
}

// SessionID returns the session ID attached by Resolve.
func SessionID(c *gin.Context) string {
	if id, ok := c.Get(CtxSessionID); ok {
		return id.(string)
	}
	return ""
}

// IsAuthenticated returns the admin flag attached by Resolve.
func IsAuthenticated(c *gin.Context) bool {
	if v, ok := c.Get(CtxAuthenticated); ok {
		return v.(bool)
	}
	return false
}
