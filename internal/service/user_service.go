package service

import (
	"errors"
	"strings"

	"blog-system/internal/model"
	"blog-system/pkg/password"

	"gorm.io/gorm"
)

// UserService 用户服务：注册、登录、资料维护
type UserService struct {
	users    UserStore
	posts    PostStore
	requests FriendRequestStore
}

// NewUserService 创建UserService实例
func NewUserService(users UserStore, posts PostStore, requests FriendRequestStore) *UserService {
	return &UserService{users: users, posts: posts, requests: requests}
}

// Register 注册
// 用户名重复返回ErrUsernameTaken，由处理器转为flash提示
func (s *UserService) Register(username, plainPassword string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || plainPassword == "" {
		return nil, ErrInvalidInput
	}

	taken, err := s.users.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	// 密码哈希
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 登录
// 用户不存在与密码错误返回同一个ErrInvalidCredentials，不区分提示
func (s *UserService) Login(username, plainPassword string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || plainPassword == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Verify(plainPassword, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByUsername 根据用户名获取用户
func (s *UserService) GetByUsername(username string) (*model.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile 更新个人资料
// photo/wallpaper传空串表示本次未上传，保留原值
func (s *UserService) UpdateProfile(userID uint, bio, photo, wallpaper string) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Bio = bio
	if photo != "" {
		user.Photo = photo
	}
	if wallpaper != "" {
		user.Wallpaper = wallpaper
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListByIDs 按ID集合获取用户
func (s *UserService) ListByIDs(ids []uint) ([]*model.User, error) {
	return s.users.ListByIDs(ids)
}

// ProfileStats 个人主页统计数据
func (s *UserService) ProfileStats(userID uint) (postsCount, friendsCount int64, err error) {
	postsCount, err = s.posts.CountByUser(userID)
	if err != nil {
		return 0, 0, err
	}
	friendsCount, err = s.requests.CountAcceptedFor(userID)
	if err != nil {
		return 0, 0, err
	}
	return postsCount, friendsCount, nil
}

// FriendsCount 用户好友数（发送方向 + 接收方向的已接受请求）
func (s *UserService) FriendsCount(userID uint) (int64, error) {
	return s.requests.CountAcceptedFor(userID)
}
