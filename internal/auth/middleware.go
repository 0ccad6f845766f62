package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/storex/internal/apperr"
	"github.com/MikeMC777/storex/internal/logging"
)

const (
	principalKey  = "auth.principal"
	sessionCookie = "__session"
)

// RequireAuth rejects requests without a valid session before the handler runs.
func RequireAuth(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			_ = c.Error(apperr.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}
		p, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrInvalidSession) {
				logging.FromContext(c.Request.Context()).Warn("session_verify_failed", zap.Error(err))
			}
			_ = c.Error(apperr.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(adminRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			_ = c.Error(apperr.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}
		if p.Role != adminRole {
			_ = c.Error(apperr.Forbidden("Forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok && p != nil
}

// IsAdmin reports whether the caller on c holds adminRole.
func IsAdmin(c *gin.Context, adminRole string) bool {
	p, ok := PrincipalFrom(c)
	return ok && p.Role == adminRole
}

func sessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
	}
	if ck, err := c.Cookie(sessionCookie); err == nil {
		return ck
	}
	return ""
}
