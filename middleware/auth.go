package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userEmailKey = "user_email"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// in the request context. The webhook route is registered outside this
// middleware: the gateway authenticates with its signature header instead.
func AuthMiddleware(secret string) gin.HandlerFunc {
	secretKey := []byte(secret)

	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(tokenString, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}
		tokenString = tokenString[7:]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secretKey, nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok {
				c.Set(userIDKey, sub)
			}
			if name, ok := claims["name"].(string); ok {
				c.Set(userNameKey, name)
			}
			if email, ok := claims["email"].(string); ok {
				c.Set(userEmailKey, email)
			}
		}

		c.Next()
	}
}

// GetUserID returns the authenticated caller's id, or "" when unauthenticated.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetUserName returns the authenticated caller's display name.
func GetUserName(c *gin.Context) string {
	return c.GetString(userNameKey)
}

// GetUserEmail returns the authenticated caller's email address.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}
