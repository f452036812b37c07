package repository

import (
	"blog-system/internal/model"

	"gorm.io/gorm"
)

// PostRepository 帖子数据仓储
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建PostRepository实例
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓储副本
func (r *PostRepository) WithTx(tx *gorm.DB) *PostRepository {
	return &PostRepository{db: tx}
}

// Create 创建帖子
func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// GetByID 根据ID获取帖子
func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 保存帖子全部字段
func (r *PostRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

// Delete 删除帖子
func (r *PostRepository) Delete(id uint) error {
	return r.db.Delete(&model.Post{}, id).Error
}

// ListRecent 按发布时间倒序获取全部帖子（首页信息流）
func (r *PostRepository) ListRecent() ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// ListByUser 获取指定用户的帖子
func (r *PostRepository) ListByUser(userID uint) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Where("user_id = ?", userID).Find(&posts).Error
	return posts, err
}

// CountByUser 统计指定用户的帖子数
func (r *PostRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
