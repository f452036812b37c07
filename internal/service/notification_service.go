package service

import (
	"blog-system/internal/model"
)

// 每页注入的最近通知条数
const latestNotificationLimit = 5

// UnreadCounter 未读通知计数器
// 实现为尽力而为：计数丢失只影响角标数字，不影响通知本身
type UnreadCounter interface {
	Incr(userID uint)
	Count(userID uint) int64
	Reset(userID uint)
}

// NotificationService 通知读取服务
// 通知的写入发生在好友引擎的事务里，这里只负责展示侧
type NotificationService struct {
	notifications NotificationStore
	unread        UnreadCounter
}

// NewNotificationService 创建NotificationService实例
func NewNotificationService(notifications NotificationStore, unread UnreadCounter) *NotificationService {
	return &NotificationService{notifications: notifications, unread: unread}
}

// Latest 用户最近的通知（最多5条），按时间倒序
func (s *NotificationService) Latest(userID uint) ([]*model.Notification, error) {
	return s.notifications.ListLatest(userID, latestNotificationLimit)
}

// UnreadCount 未读通知数
func (s *NotificationService) UnreadCount(userID uint) int64 {
	return s.unread.Count(userID)
}

// MarkSeen 清零未读计数（查看个人主页时调用）
func (s *NotificationService) MarkSeen(userID uint) {
	s.unread.Reset(userID)
}
