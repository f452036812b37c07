package repository

import (
	"blog-system/internal/model"

	"gorm.io/gorm"
)

// NotificationRepository 通知数据仓储
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建NotificationRepository实例
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓储副本
func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: tx}
}

// Create 追加通知
func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

// ListLatest 获取用户最近的通知，按时间倒序
func (r *NotificationRepository) ListLatest(userID uint, limit int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}
