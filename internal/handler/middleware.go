package handler

import (
	"blog-system/internal/service"
	"blog-system/pkg/logger"
	"blog-system/pkg/session"
	"blog-system/pkg/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationInject 通知注入中间件
// 已登录请求在进入处理器前把最近通知放入Context，随每次渲染返回
func NotificationInject(notifications *service.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := session.CurrentUserID(c); userID != 0 {
			latest, err := notifications.Latest(userID)
			if err != nil {
				logger.Warn("注入通知失败", zap.Uint("user_id", userID), zap.Error(err))
			} else {
				c.Set(view.ContextNotificationsKey, view.FilterNotificationList(latest))
			}
		}
		c.Next()
	}
}
