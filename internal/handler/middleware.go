package handler

import (
	"net/http"
	"strings"

	"github.com/blues/afs/internal/logic"
	"github.com/blues/afs/internal/model"
	"github.com/gin-gonic/gin"
)

const (
	contextUserKey  = "auth_user"
	contextTokenKey = "auth_token"
)

// AuthRequired 持有者令牌认证中间件
// 令牌已撤销或过期的请求在这里被拦下，handler 看不到。
func AuthRequired(authLogic *logic.AuthLogic) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthenticated(c)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, record, err := authLogic.Authenticate(token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextTokenKey, record)
		c.Next()
	}
}

// RequireRole 角色门禁，detail 是面向调用方的拒绝理由
func RequireRole(role model.UserRole, detail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			ErrorResponse(c, http.StatusForbidden, "Unauthorized", detail)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 当前认证用户
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// CurrentToken 当前请求携带的令牌记录
func CurrentToken(c *gin.Context) *model.AccessToken {
	if v, ok := c.Get(contextTokenKey); ok {
		if token, ok := v.(*model.AccessToken); ok {
			return token
		}
	}
	return nil
}

func abortUnauthenticated(c *gin.Context) {
	ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated", "Invalid or expired token.")
	c.Abort()
}
