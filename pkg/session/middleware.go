package session

import (
	"net/http"

	"blog-system/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ContextUserIDKey 用户ID在gin.Context中的键名
	ContextUserIDKey = "user_id"
)

// LoadUser 会话加载中间件
// 从Cookie中取出会话令牌并解析，成功则将用户ID存入gin.Context
// 不强制登录，未登录请求照常放行
func (s *Service) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(s.cookieName)
		if err == nil && token != "" {
			if userID, err := s.Resolve(token); err == nil {
				c.Set(ContextUserIDKey, userID)
			}
		}
		c.Next()
	}
}

// RequireLogin 登录保护中间件
// 无有效会话时重定向到登录页（不向调用方暴露错误）
func (s *Service) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUserIDKey); !ok {
			logger.Info("未登录访问受保护路由",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID 从gin.Context中获取当前登录用户ID，未登录返回0
func CurrentUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ContextUserIDKey); exists {
		if id, ok := userID.(uint); ok {
			return id
		}
	}
	return 0
}

// IssueCookie 创建会话并写入Cookie
func (s *Service) IssueCookie(c *gin.Context, userID uint) error {
	token, err := s.Create(userID)
	if err != nil {
		return err
	}
	c.SetCookie(s.cookieName, token, int(s.lifetime.Seconds()), "/", "", false, true)
	return nil
}

// DropCookie 销毁会话并清除Cookie
func (s *Service) DropCookie(c *gin.Context) {
	if token, err := c.Cookie(s.cookieName); err == nil && token != "" {
		if err := s.Destroy(token); err != nil {
			logger.Warn("销毁会话失败", zap.Error(err))
		}
	}
	c.SetCookie(s.cookieName, "", -1, "/", "", false, true)
}
