package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/krasniqitringe/deel-hometask/internal/model"
)

const profileKey = "auth.profile"

type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

type ProfileSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// Auth resolves the bearer token into a profile record and attaches it
// to the request context. Requests that do not resolve never reach the
// handler.
func Auth(parser TokenParser, profiles ProfileSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		profileID, err := parser.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		profile, err := profiles.GetByID(c.Request.Context(), profileID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown profile"})
			return
		}

		c.Set(profileKey, *profile)
		c.Next()
	}
}

func MustProfile(c *gin.Context) (model.Profile, bool) {
	value, exists := c.Get(profileKey)
	if !exists {
		return model.Profile{}, false
	}
	profile, ok := value.(model.Profile)
	return profile, ok
}
