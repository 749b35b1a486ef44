package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"organizations-backend/shared/response"
	"organizations-backend/shared/utils/auth"
)

// AuthMiddleware verifies the bearer token and sets userID and userEmail in
// the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Failure(c, http.StatusUnauthorized, "Authorization header is required", nil)
			return
		}

		tokenString := ExtractTokenFromHeader(c.Request)
		if tokenString == "" {
			response.Failure(c, http.StatusUnauthorized, "Invalid authorization format. Expected Bearer {token}", nil)
			return
		}

		claims, err := utils.ValidateJWT(tokenString, secret)
		if err != nil {
			response.Failure(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}

		userID, err := claims.UserUUID()
		if err != nil {
			response.Failure(c, http.StatusUnauthorized, "Invalid user ID in token", nil)
			return
		}

		c.Set("userID", userID)
		c.Set("userEmail", claims.Email)

		c.Next()
	}
}

// ExtractTokenFromHeader extracts the token from the Authorization header
func ExtractTokenFromHeader(r *http.Request) string {
	tokenParts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return ""
	}
	return tokenParts[1]
}
