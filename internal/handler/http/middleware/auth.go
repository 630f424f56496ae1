package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Prakash9019/my-cricket-reg-app/internal/handler/http/dto"
	"github.com/Prakash9019/my-cricket-reg-app/internal/usecase"
)

// Context keys set by AuthMiddleWare.
const (
	ContextPlayerKey = "playerKey"
	ContextPlayerID  = "playerID"
)

// AuthMiddleWare requires a valid Bearer access token.
func AuthMiddleWare(jwtService usecase.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authorization header missing or malformed"})
			return
		}
		claims, err := jwtService.ParseAccessToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid or expired token"})
			return
		}
		c.Set(ContextPlayerKey, claims.PlayerKey)
		c.Set(ContextPlayerID, claims.Subject)
		c.Next()
	}
}
