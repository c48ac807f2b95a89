// README: Firebase bearer-token auth middleware; exposes the caller to handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trippo/internal/infra"
	"trippo/internal/types"
)

const (
	ctxKeyUID   = "auth.uid"
	ctxKeyToken = "auth.token"
)

// Auth rejects requests without a valid "Authorization: Bearer <id token>" header.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		id, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil || id.UID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxKeyUID, id.UID)
		c.Set(ctxKeyToken, raw)
		c.Next()
	}
}

// CallerUID returns the verified uid, or "" outside Auth.
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxKeyUID)
}

// CallerSession bundles the uid with the raw token for collaborators that act on the user's behalf.
func CallerSession(c *gin.Context) types.Session {
	return types.Session{UID: c.GetString(ctxKeyUID), Token: c.GetString(ctxKeyToken)}
}
