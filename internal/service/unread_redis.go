package service

import (
	"fmt"

	"blog-system/pkg/logger"
	"blog-system/pkg/session"

	"go.uber.org/zap"
)

// RedisUnreadCounter 基于Redis的未读通知计数器
type RedisUnreadCounter struct {
	sessions *session.Service
}

// NewRedisUnreadCounter 创建RedisUnreadCounter实例
func NewRedisUnreadCounter(sessions *session.Service) *RedisUnreadCounter {
	return &RedisUnreadCounter{sessions: sessions}
}

// unreadKey Redis键名
func unreadKey(userID uint) string {
	return fmt.Sprintf("notify:unread:%d", userID)
}

// Incr 未读数加一
func (c *RedisUnreadCounter) Incr(userID uint) {
	if _, err := c.sessions.Counter(unreadKey(userID)); err != nil {
		logger.Warn("未读计数递增失败", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// Count 读取未读数
func (c *RedisUnreadCounter) Count(userID uint) int64 {
	count, err := c.sessions.CounterValue(unreadKey(userID))
	if err != nil {
		logger.Warn("未读计数读取失败", zap.Uint("user_id", userID), zap.Error(err))
		return 0
	}
	return count
}

// Reset 清零未读数
func (c *RedisUnreadCounter) Reset(userID uint) {
	if err := c.sessions.ResetCounter(unreadKey(userID)); err != nil {
		logger.Warn("未读计数清零失败", zap.Uint("user_id", userID), zap.Error(err))
	}
}
