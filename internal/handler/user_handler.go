package handler

import (
	"errors"

	"blog-system/internal/service"
	"blog-system/pkg/logger"
	"blog-system/pkg/session"
	"blog-system/pkg/upload"
	"blog-system/pkg/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler 账号相关路由：注册、登录、登出、个人主页、资料编辑
type UserHandler struct {
	users         *service.UserService
	posts         *service.PostService
	notifications *service.NotificationService
	sessions      *session.Service
	uploads       *upload.Saver
}

// NewUserHandler 创建UserHandler实例
func NewUserHandler(users *service.UserService, posts *service.PostService, notifications *service.NotificationService, sessions *session.Service, uploads *upload.Saver) *UserHandler {
	return &UserHandler{
		users:         users,
		posts:         posts,
		notifications: notifications,
		sessions:      sessions,
		uploads:       uploads,
	}
}

// RegisterPage 注册页
func (h *UserHandler) RegisterPage(c *gin.Context) {
	view.Render(c, "register", nil)
}

// Register 提交注册
func (h *UserHandler) Register(c *gin.Context) {
	type req struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBind(&r); err != nil {
		view.RedirectWithFlash(c, "/register", "Username and password are required.")
		return
	}

	if _, err := h.users.Register(r.Username, r.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			view.RedirectWithFlash(c, "/register", "Username already exists.")
		case errors.Is(err, service.ErrInvalidInput):
			view.RedirectWithFlash(c, "/register", "Username and password are required.")
		default:
			logger.Error("注册失败", zap.Error(err))
			view.RedirectWithFlash(c, "/register", "Registration failed.")
		}
		return
	}
	view.RedirectWithFlash(c, "/login", "Registration successful. Please log in.")
}

// LoginPage 登录页
func (h *UserHandler) LoginPage(c *gin.Context) {
	view.Render(c, "login", nil)
}

// Login 提交登录
func (h *UserHandler) Login(c *gin.Context) {
	type req struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBind(&r); err != nil {
		view.RedirectWithFlash(c, "/login", "Invalid credentials.")
		return
	}

	user, err := h.users.Login(r.Username, r.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			view.RedirectWithFlash(c, "/login", "Invalid credentials.")
			return
		}
		logger.Error("登录失败", zap.Error(err))
		view.RedirectWithFlash(c, "/login", "Login failed.")
		return
	}

	if err := h.sessions.IssueCookie(c, user.ID); err != nil {
		logger.Error("创建会话失败", zap.Uint("user_id", user.ID), zap.Error(err))
		view.RedirectWithFlash(c, "/login", "Login failed.")
		return
	}
	view.RedirectWithFlash(c, "/", "Login successful.")
}

// Logout 登出
func (h *UserHandler) Logout(c *gin.Context) {
	h.sessions.DropCookie(c)
	view.RedirectWithFlash(c, "/login", "Logged out.")
}

// UserPosts 查看指定用户的帖子（公开页，用户不存在返回404）
func (h *UserHandler) UserPosts(c *gin.Context) {
	username := c.Param("username")
	user, err := h.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			view.NotFound(c)
			return
		}
		logger.Error("查询用户失败", zap.String("username", username), zap.Error(err))
		view.Redirect(c, "/")
		return
	}

	posts, err := h.posts.ListByUser(user.ID)
	if err != nil {
		logger.Error("查询用户帖子失败", zap.Uint("user_id", user.ID), zap.Error(err))
		view.Redirect(c, "/")
		return
	}

	friendsCount, err := h.users.FriendsCount(user.ID)
	if err != nil {
		logger.Warn("统计好友数失败", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	view.Render(c, "user_posts", gin.H{
		"user":  view.FilterUserInfo(user, friendsCount),
		"posts": view.FilterPostList(posts),
	})
}

// Profile 个人主页：资料、统计数据与最近通知
func (h *UserHandler) Profile(c *gin.Context) {
	userID := session.CurrentUserID(c)
	user, err := h.users.GetByID(userID)
	if err != nil {
		logger.Error("查询当前用户失败", zap.Uint("user_id", userID), zap.Error(err))
		view.Redirect(c, "/login")
		return
	}

	postsCount, friendsCount, err := h.users.ProfileStats(userID)
	if err != nil {
		logger.Warn("统计个人数据失败", zap.Uint("user_id", userID), zap.Error(err))
	}

	latest, err := h.notifications.Latest(userID)
	if err != nil {
		logger.Warn("查询最近通知失败", zap.Uint("user_id", userID), zap.Error(err))
	}
	unread := h.notifications.UnreadCount(userID)

	// 查看个人主页即视为已读
	h.notifications.MarkSeen(userID)

	view.Render(c, "profile", gin.H{
		"user":                 view.FilterUserInfo(user, friendsCount),
		"posts_count":          postsCount,
		"friends_count":        friendsCount,
		"unread_count":         unread,
		"latest_notifications": view.FilterNotificationList(latest),
	})
}

// EditProfilePage 资料编辑页
func (h *UserHandler) EditProfilePage(c *gin.Context) {
	userID := session.CurrentUserID(c)
	user, err := h.users.GetByID(userID)
	if err != nil {
		logger.Error("查询当前用户失败", zap.Uint("user_id", userID), zap.Error(err))
		view.Redirect(c, "/login")
		return
	}
	friendsCount, _ := h.users.FriendsCount(userID)
	view.Render(c, "edit_profile", gin.H{
		"user": view.FilterUserInfo(user, friendsCount),
	})
}

// EditProfile 提交资料编辑
// bio每次覆盖；photo/wallpaper仅在上传了文件时更新，同名文件覆盖保存
func (h *UserHandler) EditProfile(c *gin.Context) {
	userID := session.CurrentUserID(c)
	bio := c.PostForm("bio")

	photo, ok := h.saveUploaded(c, "photo")
	if !ok {
		return
	}
	wallpaper, ok := h.saveUploaded(c, "wallpaper")
	if !ok {
		return
	}

	if _, err := h.users.UpdateProfile(userID, bio, photo, wallpaper); err != nil {
		logger.Error("更新资料失败", zap.Uint("user_id", userID), zap.Error(err))
		view.RedirectWithFlash(c, "/edit_profile", "Profile update failed.")
		return
	}
	view.RedirectWithFlash(c, "/profile", "Profile updated!")
}

// saveUploaded 保存指定表单字段的上传文件
// 未携带该字段返回空文件名；保存失败时已写出响应并返回ok=false
func (h *UserHandler) saveUploaded(c *gin.Context, field string) (filename string, ok bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil || fileHeader.Filename == "" {
		// 本次未上传
		return "", true
	}
	filename, err = h.uploads.Save(fileHeader)
	if err != nil {
		logger.Warn("保存上传文件失败",
			zap.String("field", field),
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		view.RedirectWithFlash(c, "/edit_profile", "Upload failed.")
		return "", false
	}
	return filename, true
}
