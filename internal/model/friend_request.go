package model

import (
	"time"
)

// FriendRequest 好友请求
// Status: pending/accepted/rejected
// 由发送方创建，仅接收方可变更状态；无删除路径

const (
	// FriendRequestPending 待处理
	FriendRequestPending = "pending"
	// FriendRequestAccepted 已接受
	FriendRequestAccepted = "accepted"
	// FriendRequestRejected 已拒绝
	FriendRequestRejected = "rejected"
)

type FriendRequest struct {
	ID         uint      `gorm:"primaryKey"`
	SenderID   uint      `gorm:"not null;index;comment:发送者ID"`
	ReceiverID uint      `gorm:"not null;index;comment:接收者ID"`
	Status     string    `gorm:"type:varchar(20);default:'pending';comment:请求状态"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

func (FriendRequest) TableName() string { return "friend_request" }
