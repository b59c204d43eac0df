package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
)

const (
	sessionUserKey  = "user_id"
	actorContextKey = "__actor"
)

// RequireAuth 是组合式的认证守卫：要么把会话解析成一个已存在
// 的用户并放进请求上下文，要么带原因短路返回 401。
// 所有需要登录的处理器统一从上下文取 actor，不各自早退。
func (a *API) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(sessionUserKey)
		if raw == nil {
			respondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		userID, ok := raw.(uint)
		if !ok {
			respondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		// 会话指向的用户可能已不存在，此时会话同样无效。
		user, err := a.auth.GetUser(userID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		c.Set(actorContextKey, user)
		c.Next()
	}
}

// currentUser 取出守卫解析好的 actor。只在 RequireAuth 之后调用。
func currentUser(c *gin.Context) *db.User {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return nil
	}
	user, _ := value.(*db.User)
	return user
}
