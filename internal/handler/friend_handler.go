package handler

import (
	"errors"

	"blog-system/internal/service"
	"blog-system/pkg/logger"
	"blog-system/pkg/session"
	"blog-system/pkg/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FriendHandler 好友相关路由：请求发送与处理、好友列表、搜索
type FriendHandler struct {
	friends *service.FriendService
	users   *service.UserService
}

// NewFriendHandler 创建FriendHandler实例
func NewFriendHandler(friends *service.FriendService, users *service.UserService) *FriendHandler {
	return &FriendHandler{friends: friends, users: users}
}

// SendRequest 发送好友请求
// 同方向已有请求时不产生新行，仅flash提示
func (h *FriendHandler) SendRequest(c *gin.Context) {
	receiverID, ok := parseID(c, "receiver_id")
	if !ok {
		return
	}

	senderID := session.CurrentUserID(c)
	if err := h.friends.SendRequest(senderID, receiverID); err != nil {
		switch {
		case errors.Is(err, service.ErrRequestExists):
			view.RedirectWithFlash(c, "/search", "Friend request already sent.")
		case errors.Is(err, service.ErrNotFound):
			view.NotFound(c)
		default:
			logger.Error("发送好友请求失败",
				zap.Uint("sender_id", senderID),
				zap.Uint("receiver_id", receiverID),
				zap.Error(err),
			)
			view.RedirectWithFlash(c, "/search", "Failed to send friend request.")
		}
		return
	}
	view.RedirectWithFlash(c, "/search", "Friend request sent.")
}

// Accept 接受好友请求
func (h *FriendHandler) Accept(c *gin.Context) {
	h.respond(c, "accept", "Friend request accepted.")
}

// Reject 拒绝好友请求
func (h *FriendHandler) Reject(c *gin.Context) {
	h.respond(c, "reject", "Friend request rejected.")
}

// respond 处理好友请求
// 请求不存在返回404；非接收者静默跳转，无错误提示
func (h *FriendHandler) respond(c *gin.Context, decision, successFlash string) {
	requestID, ok := parseID(c, "request_id")
	if !ok {
		return
	}

	actorID := session.CurrentUserID(c)
	if err := h.friends.Respond(requestID, actorID, decision); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			view.NotFound(c)
		case errors.Is(err, service.ErrNotReceiver):
			view.Redirect(c, "/friend_requests")
		default:
			logger.Error("处理好友请求失败",
				zap.Uint("request_id", requestID),
				zap.String("decision", decision),
				zap.Error(err),
			)
			view.Redirect(c, "/friend_requests")
		}
		return
	}
	view.RedirectWithFlash(c, "/friend_requests", successFlash)
}

// Friends 好友列表
func (h *FriendHandler) Friends(c *gin.Context) {
	userID := session.CurrentUserID(c)
	friends, err := h.friends.ListFriends(userID)
	if err != nil {
		logger.Error("查询好友列表失败", zap.Uint("user_id", userID), zap.Error(err))
		friends = nil
	}

	list := make([]gin.H, 0, len(friends))
	for _, friend := range friends {
		list = append(list, gin.H{
			"id":       friend.ID,
			"username": friend.Username,
			"photo":    friend.Photo,
		})
	}
	view.Render(c, "friends", gin.H{
		"friends": list,
	})
}

// FriendRequests 待处理的好友请求列表（带发送者用户名）
func (h *FriendHandler) FriendRequests(c *gin.Context) {
	userID := session.CurrentUserID(c)
	requests, err := h.friends.ListPendingIncoming(userID)
	if err != nil {
		logger.Error("查询待处理请求失败", zap.Uint("user_id", userID), zap.Error(err))
		requests = nil
	}

	infos := make([]*view.FriendRequestInfo, 0, len(requests))
	for _, request := range requests {
		info := view.FilterFriendRequestInfo(request)
		if sender, err := h.users.GetByID(request.SenderID); err == nil {
			info.Sender = sender.Username
		}
		infos = append(infos, info)
	}
	view.Render(c, "friend_requests", gin.H{
		"requests": infos,
	})
}

// SearchPage 搜索页
func (h *FriendHandler) SearchPage(c *gin.Context) {
	view.Render(c, "search", gin.H{
		"results": []gin.H{},
	})
}

// Search 搜索可添加的好友
// 排除自己和有过任意方向、任意状态请求的用户
func (h *FriendHandler) Search(c *gin.Context) {
	type req struct {
		Query string `form:"query"`
	}
	var r req
	if err := c.ShouldBind(&r); err != nil {
		view.RedirectWithFlash(c, "/search", "Search failed.")
		return
	}

	userID := session.CurrentUserID(c)
	results, err := h.friends.SearchCandidates(userID, r.Query)
	if err != nil {
		logger.Error("搜索用户失败", zap.Uint("user_id", userID), zap.Error(err))
		view.RedirectWithFlash(c, "/search", "Search failed.")
		return
	}

	list := make([]gin.H, 0, len(results))
	for _, user := range results {
		list = append(list, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"photo":    user.Photo,
		})
	}
	view.Render(c, "search", gin.H{
		"query":   r.Query,
		"results": list,
	})
}
