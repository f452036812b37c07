package service

import (
	"blog-system/internal/model"
	"blog-system/internal/repository"

	"gorm.io/gorm"
)

// 服务层依赖的存储接口
// 由 internal/repository 的GORM仓储实现，测试用内存实现替换

// UserStore 用户存储
type UserStore interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	Update(user *model.User) error
	SearchByUsernameExcluding(query string, excludedIDs []uint) ([]*model.User, error)
	ListByIDs(ids []uint) ([]*model.User, error)
}

// PostStore 帖子存储
type PostStore interface {
	Create(post *model.Post) error
	GetByID(id uint) (*model.Post, error)
	Update(post *model.Post) error
	Delete(id uint) error
	ListRecent() ([]*model.Post, error)
	ListByUser(userID uint) ([]*model.Post, error)
	CountByUser(userID uint) (int64, error)
}

// FriendRequestStore 好友请求存储
type FriendRequestStore interface {
	Create(request *model.FriendRequest) error
	GetByID(id uint) (*model.FriendRequest, error)
	UpdateStatus(id uint, status string) error
	GetBySenderAndReceiver(senderID, receiverID uint) (*model.FriendRequest, error)
	ListPendingForReceiver(receiverID uint) ([]*model.FriendRequest, error)
	ListAcceptedFor(userID uint) ([]*model.FriendRequest, error)
	ListAllTouching(userID uint) ([]*model.FriendRequest, error)
	CountAcceptedFor(userID uint) (int64, error)
}

// NotificationStore 通知存储
type NotificationStore interface {
	Create(notification *model.Notification) error
	ListLatest(userID uint, limit int) ([]*model.Notification, error)
}

// Stores 一次事务内可用的全部存储
type Stores struct {
	Users         UserStore
	Posts         PostStore
	Requests      FriendRequestStore
	Notifications NotificationStore
}

// TxRunner 以单个事务执行fn，fn内的全部写入要么全部提交要么全部回滚
type TxRunner interface {
	InTx(fn func(s Stores) error) error
}

// GormTxRunner 基于GORM事务的TxRunner实现
type GormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner 创建GormTxRunner实例
func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

// InTx 在GORM事务内执行fn
func (r *GormTxRunner) InTx(fn func(s Stores) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(Stores{
			Users:         repository.NewUserRepository(tx),
			Posts:         repository.NewPostRepository(tx),
			Requests:      repository.NewFriendRequestRepository(tx),
			Notifications: repository.NewNotificationRepository(tx),
		})
	})
}
