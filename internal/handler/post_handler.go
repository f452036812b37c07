package handler

import (
	"errors"
	"strconv"

	"blog-system/internal/model"
	"blog-system/internal/service"
	"blog-system/pkg/logger"
	"blog-system/pkg/session"
	"blog-system/pkg/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 帖子相关路由：首页信息流与帖子增删改
type PostHandler struct {
	posts *service.PostService
	users *service.UserService
}

// NewPostHandler 创建PostHandler实例
func NewPostHandler(posts *service.PostService, users *service.UserService) *PostHandler {
	return &PostHandler{posts: posts, users: users}
}

// Home 首页信息流，全部帖子按发布时间倒序
func (h *PostHandler) Home(c *gin.Context) {
	userID := session.CurrentUserID(c)
	user, err := h.users.GetByID(userID)
	if err != nil {
		// 会话指向的用户已不存在，回到登录页
		view.Redirect(c, "/login")
		return
	}

	posts, err := h.posts.HomeFeed()
	if err != nil {
		logger.Error("查询首页信息流失败", zap.Error(err))
		posts = nil
	}

	friendsCount, _ := h.users.FriendsCount(userID)
	view.Render(c, "home", gin.H{
		"user":  view.FilterUserInfo(user, friendsCount),
		"posts": h.withAuthors(posts),
	})
}

// CreatePage 发帖页
func (h *PostHandler) CreatePage(c *gin.Context) {
	view.Render(c, "create", nil)
}

// Create 提交发帖
func (h *PostHandler) Create(c *gin.Context) {
	type req struct {
		Title   string `form:"title" binding:"required"`
		Content string `form:"content" binding:"required"`
	}
	var r req
	if err := c.ShouldBind(&r); err != nil {
		view.RedirectWithFlash(c, "/create", "Title and content are required.")
		return
	}

	userID := session.CurrentUserID(c)
	if _, err := h.posts.Create(userID, r.Title, r.Content); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			view.RedirectWithFlash(c, "/create", "Title and content are required.")
			return
		}
		logger.Error("发帖失败", zap.Uint("user_id", userID), zap.Error(err))
		view.RedirectWithFlash(c, "/create", "Failed to create post.")
		return
	}
	view.Redirect(c, "/")
}

// EditPage 编辑页
// 帖子不存在返回404，非作者静默跳回首页
func (h *PostHandler) EditPage(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.Get(postID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			view.NotFound(c)
			return
		}
		logger.Error("查询帖子失败", zap.Uint("post_id", postID), zap.Error(err))
		view.Redirect(c, "/")
		return
	}
	if post.UserID != session.CurrentUserID(c) {
		view.Redirect(c, "/")
		return
	}

	view.Render(c, "edit", gin.H{
		"post": view.FilterPostInfo(post),
	})
}

// Edit 提交编辑，仅作者可操作
func (h *PostHandler) Edit(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	type req struct {
		Title   string `form:"title" binding:"required"`
		Content string `form:"content" binding:"required"`
	}
	var r req
	if err := c.ShouldBind(&r); err != nil {
		view.RedirectWithFlash(c, "/edit/"+strconv.FormatUint(uint64(postID), 10), "Title and content are required.")
		return
	}

	actorID := session.CurrentUserID(c)
	if _, err := h.posts.Update(actorID, postID, r.Title, r.Content); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			view.NotFound(c)
		case errors.Is(err, service.ErrNotOwner):
			// 非作者，静默跳回首页
			view.Redirect(c, "/")
		default:
			logger.Error("编辑帖子失败", zap.Uint("post_id", postID), zap.Error(err))
			view.Redirect(c, "/")
		}
		return
	}
	view.Redirect(c, "/")
}

// Delete 删除帖子
// 帖子不存在返回404，非作者静默跳回首页且帖子不受影响
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	actorID := session.CurrentUserID(c)
	if err := h.posts.Delete(actorID, postID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			view.NotFound(c)
			return
		}
		if !errors.Is(err, service.ErrNotOwner) {
			logger.Error("删除帖子失败", zap.Uint("post_id", postID), zap.Error(err))
		}
	}
	view.Redirect(c, "/")
}

// withAuthors 为帖子列表补充作者用户名
func (h *PostHandler) withAuthors(posts []*model.Post) []*view.PostInfo {
	infos := view.FilterPostList(posts)

	ids := make([]uint, 0, len(posts))
	seen := make(map[uint]bool)
	for _, post := range posts {
		if !seen[post.UserID] {
			seen[post.UserID] = true
			ids = append(ids, post.UserID)
		}
	}
	authors, err := h.users.ListByIDs(ids)
	if err != nil {
		logger.Warn("查询帖子作者失败", zap.Error(err))
		return infos
	}
	names := make(map[uint]string, len(authors))
	for _, author := range authors {
		names[author.ID] = author.Username
	}
	for _, info := range infos {
		info.Author = names[info.UserID]
	}
	return infos
}

// parseID 解析路径中的数字ID，非法时写出404
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		view.NotFound(c)
		return 0, false
	}
	return uint(id), true
}
