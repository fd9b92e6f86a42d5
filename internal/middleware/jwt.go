package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/afternote/internal/pkg/errcode"
	"github.com/xxxsen/afternote/internal/pkg/jwt"
	"github.com/xxxsen/afternote/internal/pkg/response"
)

const (
	ContextUserIDKey = "user_id"
	accessTokenQuery = "access_token"
)

// JWTAuth resolves the caller identity from a bearer token. GET requests may
// carry the token in the access_token query parameter instead, so stored
// files can be linked directly.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, msg := bearerToken(c)
		if token == "" {
			reject(c, msg)
			return
		}
		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			reject(c, "invalid token")
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if c.Request.Method == http.MethodGet {
			if token := strings.TrimSpace(c.Query(accessTokenQuery)); token != "" {
				return token, ""
			}
		}
		return "", "missing authorization"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "invalid authorization"
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "invalid authorization"
	}
	return token, ""
}

func reject(c *gin.Context, msg string) {
	response.Error(c, errcode.ErrUnauthorized, msg)
	c.Abort()
}
