package model

import (
	"time"
)

// Notification 通知
// 只追加不修改，页面加载时拉取最近若干条

type Notification struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index;comment:目标用户ID"`
	Message   string    `gorm:"type:varchar(200);not null;comment:通知内容"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (Notification) TableName() string { return "notification" }
