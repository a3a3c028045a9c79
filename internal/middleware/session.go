package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ==================== 会话中间件 ====================

const (
	// SessionCookieName 会话 cookie 名
	SessionCookieName = "storefront_session"
	// SessionContextKey gin context 里的会话 ID key
	SessionContextKey = "session_id"

	sessionMaxAge = 30 * 24 * time.Hour
)

// Session 会话中间件
// 没有会话 cookie 就发一个 uuid；购物车存储 key 由会话 ID 派生，
// 一个浏览器对应一辆车
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, sid, int(sessionMaxAge.Seconds()), "/", "", false, true)
		}
		c.Set(SessionContextKey, sid)
		c.Next()
	}
}

// SessionID 从 gin context 取会话 ID
func SessionID(c *gin.Context) string {
	if v, ok := c.Get(SessionContextKey); ok {
		return v.(string)
	}
	return ""
}

// CartKey 会话 ID -> 购物车存储 key
func CartKey(sessionID string) string {
	return "cart:" + sessionID
}
