package repository

import (
	"errors"

	"blog-system/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户数据仓储
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建UserRepository实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓储副本
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// Create 创建用户
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername 用户名是否已被占用
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update 保存用户全部字段
func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// SearchByUsernameExcluding 按用户名子串搜索，排除指定ID集合
func (r *UserRepository) SearchByUsernameExcluding(query string, excludedIDs []uint) ([]*model.User, error) {
	var users []*model.User
	err := r.db.
		Where("username LIKE ?", "%"+query+"%").
		Where("id NOT IN ?", excludedIDs).
		Find(&users).Error
	return users, err
}

// ListByIDs 按ID集合获取用户
func (r *UserRepository) ListByIDs(ids []uint) ([]*model.User, error) {
	var users []*model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}
