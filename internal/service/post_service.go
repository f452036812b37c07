package service

import (
	"errors"
	"strings"

	"blog-system/internal/model"

	"gorm.io/gorm"
)

// PostService 帖子服务：信息流与作者专属的增删改
type PostService struct {
	posts PostStore
}

// NewPostService 创建PostService实例
func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

// Create 发布帖子
func (s *PostService) Create(userID uint, title, content string) (*model.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || content == "" {
		return nil, ErrInvalidInput
	}
	post := &model.Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// HomeFeed 首页信息流，全部帖子按发布时间倒序
func (s *PostService) HomeFeed() ([]*model.Post, error) {
	return s.posts.ListRecent()
}

// ListByUser 指定用户的帖子
func (s *PostService) ListByUser(userID uint) ([]*model.Post, error) {
	return s.posts.ListByUser(userID)
}

// Get 根据ID获取帖子
func (s *PostService) Get(id uint) (*model.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// Update 编辑帖子，仅作者可操作
// 只更新标题与正文，其他字段不动
func (s *PostService) Update(actorID, postID uint, title, content string) (*model.Post, error) {
	post, err := s.Get(postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, ErrNotOwner
	}
	title = strings.TrimSpace(title)
	if title == "" || content == "" {
		return nil, ErrInvalidInput
	}
	post.Title = title
	post.Content = content
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除帖子，仅作者可操作
func (s *PostService) Delete(actorID, postID uint) error {
	post, err := s.Get(postID)
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return ErrNotOwner
	}
	return s.posts.Delete(postID)
}
