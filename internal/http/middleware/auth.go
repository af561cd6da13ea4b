package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"portal/internal/domain"
)

const requestContextKey = "requestContext"

var jwtSecret = []byte("super-secret-key-change-me")

// SetJWTSecret overrides the signing secret at startup.
func SetJWTSecret(secret string) {
	if strings.TrimSpace(secret) != "" {
		jwtSecret = []byte(secret)
	}
}

// IssueToken signs a 24h session token for a user.
func IssueToken(userID int64, email, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// Auth validates the bearer token and stores a RequestContext for handlers,
// so services receive the session explicitly instead of re-fetching it.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "세션이 만료되었습니다"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "세션이 유효하지 않습니다"})
			return
		}

		rc := domain.RequestContext{}
		if v, ok := claims["user_id"].(float64); ok {
			rc.UserID = domain.ID(v)
		}
		if v, ok := claims["email"].(string); ok {
			rc.Email = v
		}
		if v, ok := claims["role"].(string); ok {
			rc.Role = strings.ToLower(v)
		}
		if rc.UserID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "세션이 유효하지 않습니다"})
			return
		}

		c.Set(requestContextKey, rc)
		c.Next()
	}
}

// GetRequestContext returns the authenticated session stored by Auth.
func GetRequestContext(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(requestContextKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}
