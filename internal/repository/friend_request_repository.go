package repository

import (
	"errors"

	"blog-system/internal/model"

	"gorm.io/gorm"
)

// FriendRequestRepository 好友请求数据仓储
type FriendRequestRepository struct {
	db *gorm.DB
}

// NewFriendRequestRepository 创建FriendRequestRepository实例
func NewFriendRequestRepository(db *gorm.DB) *FriendRequestRepository {
	return &FriendRequestRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓储副本
func (r *FriendRequestRepository) WithTx(tx *gorm.DB) *FriendRequestRepository {
	return &FriendRequestRepository{db: tx}
}

// Create 创建好友请求
func (r *FriendRequestRepository) Create(request *model.FriendRequest) error {
	return r.db.Create(request).Error
}

// GetByID 根据ID获取好友请求
func (r *FriendRequestRepository) GetByID(id uint) (*model.FriendRequest, error) {
	var request model.FriendRequest
	if err := r.db.First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateStatus 更新请求状态
func (r *FriendRequestRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.FriendRequest{}).Where("id = ?", id).Update("status", status).Error
}

// GetBySenderAndReceiver 按发送者->接收者方向查找请求
// 重复请求检查仅查这一个方向
func (r *FriendRequestRepository) GetBySenderAndReceiver(senderID, receiverID uint) (*model.FriendRequest, error) {
	var request model.FriendRequest
	err := r.db.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// ListPendingForReceiver 获取接收者的全部待处理请求
func (r *FriendRequestRepository) ListPendingForReceiver(receiverID uint) ([]*model.FriendRequest, error) {
	var requests []*model.FriendRequest
	err := r.db.
		Where("receiver_id = ? AND status = ?", receiverID, model.FriendRequestPending).
		Find(&requests).Error
	return requests, err
}

// ListAcceptedFor 获取用户作为发送者或接收者的已接受请求
func (r *FriendRequestRepository) ListAcceptedFor(userID uint) ([]*model.FriendRequest, error) {
	var requests []*model.FriendRequest
	err := r.db.
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", userID, userID, model.FriendRequestAccepted).
		Find(&requests).Error
	return requests, err
}

// ListAllTouching 获取与用户相关的全部请求（双向、任意状态）
// 用于搜索排除集：只要出现过请求，双方即互不可见
func (r *FriendRequestRepository) ListAllTouching(userID uint) ([]*model.FriendRequest, error) {
	var requests []*model.FriendRequest
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Find(&requests).Error
	return requests, err
}

// CountAcceptedFor 统计用户的好友数（发送方向 + 接收方向的已接受请求）
func (r *FriendRequestRepository) CountAcceptedFor(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.FriendRequest{}).
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", userID, userID, model.FriendRequestAccepted).
		Count(&count).Error
	return count, err
}
