package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/viewtube/backend/internal/auth"
	"github.com/viewtube/backend/internal/query"
)

const viewerKey = "viewer"

// AuthMiddleware rejects requests without a valid bearer token and
// stores the resolved viewer on the request context.
func AuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, jwtService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set(viewerKey, query.NewViewer(userID))
		c.Next()
	}
}

// OptionalAuth resolves the viewer when a valid token is present and
// falls back to an anonymous viewer otherwise. Read endpoints use it so
// anonymous access works while viewer-relative fields stay accurate
// for signed-in callers.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, jwtService); ok {
			c.Set(viewerKey, query.NewViewer(userID))
		} else {
			c.Set(viewerKey, query.Anonymous())
		}
		c.Next()
	}
}

func bearerUserID(c *gin.Context, jwtService *auth.JWTService) (primitive.ObjectID, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return primitive.NilObjectID, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return primitive.NilObjectID, false
	}

	userID, _, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		return primitive.NilObjectID, false
	}
	return userID, true
}

// Viewer returns the viewer stored by the auth middleware, anonymous
// when none was set.
func Viewer(c *gin.Context) query.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(query.Viewer); ok {
			return viewer
		}
	}
	return query.Anonymous()
}
