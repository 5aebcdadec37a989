package middleware

import (
	"Foodnote/pkg/context"
	"Foodnote/pkg/jwt"
	"Foodnote/pkg/response"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer token，快过期时在响应头里下发新 token
func Auth(secret []byte, expire time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TokenTypeAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		if jwt.ShouldRotate(claims, expire/10) {
			if newToken, err := jwt.GenerateToken(secret, claims.Subject, jwt.TokenTypeAccess, expire); err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}
		c.Set(context.CtxSubject, claims.Subject)

		c.Next()
	}
}
