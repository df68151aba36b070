package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the authenticated caller extracted from a token. CanManage
// gates the archive, restore and permanent deletion endpoints.
type Principal struct {
	UserID    uuid.UUID
	Name      string
	Email     string
	CanManage bool
}

// TokenValidator interface for auth-service token validation
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (*Principal, error)
}

// Context keys set by the auth middleware
const (
	ContextUserID    = "user_id"
	ContextUserName  = "user_name"
	ContextUserEmail = "user_email"
	ContextCanManage = "can_manage"
	ContextJWTToken  = "jwtToken"
)

// AuthWithValidator returns a middleware that validates JWT tokens via auth-service
// This ensures blacklisted tokens (logged out) are properly rejected
func AuthWithValidator(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		// Validate token via auth-service (includes blacklist check)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		principal, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		setPrincipal(c, principal, tokenString)
		c.Next()
	}
}

// Auth returns a middleware that validates JWT tokens locally (fallback, no blacklist check)
// Deprecated: Use AuthWithValidator for proper blacklist support
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		// Support multiple claim formats for the user ID
		var userIDStr string
		if uid, ok := claims["user_id"].(string); ok {
			userIDStr = uid
		} else if sub, ok := claims["sub"].(string); ok {
			userIDStr = sub
		} else if uid, ok := claims["uid"].(string); ok {
			userIDStr = uid
		} else {
			abortUnauthorized(c, "User ID not found in token")
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			abortUnauthorized(c, "Invalid user ID format")
			return
		}

		principal := &Principal{UserID: userID}
		if name, ok := claims["name"].(string); ok {
			principal.Name = name
		}
		if email, ok := claims["email"].(string); ok {
			principal.Email = email
		}
		if canManage, ok := claims["can_manage"].(bool); ok {
			principal.CanManage = canManage
		}

		setPrincipal(c, principal, tokenString)
		c.Next()
	}
}

// RequireManage returns a middleware that rejects callers without the
// management capability. Must run after an auth middleware.
func RequireManage() gin.HandlerFunc {
	return func(c *gin.Context) {
		canManage, ok := c.Get(ContextCanManage)
		if !ok || canManage != true {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Management permission is required",
				},
				"message": "Management permission is required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, aborting
// with 401 when missing or malformed
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "Authorization header is required")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		abortUnauthorized(c, "Invalid authorization header format")
		return "", false
	}
	return parts[1], true
}

func setPrincipal(c *gin.Context, principal *Principal, tokenString string) {
	c.Set(ContextUserID, principal.UserID)
	c.Set(ContextUserName, principal.Name)
	c.Set(ContextUserEmail, principal.Email)
	c.Set(ContextCanManage, principal.CanManage)
	c.Set(ContextJWTToken, tokenString)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
		"message": message,
	})
	c.Abort()
}
