package view

import (
	"blog-system/internal/model"
)

// UserInfo 用户信息（隐藏敏感字段）
type UserInfo struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Photo        string `json:"photo,omitempty"`
	Wallpaper    string `json:"wallpaper,omitempty"`
	Bio          string `json:"bio,omitempty"`
	FriendsCount int64  `json:"friends_count"`
	CreatedAt    string `json:"created_at"`
}

// FilterUserInfo 过滤用户信息，隐藏密码哈希等敏感字段
func FilterUserInfo(user *model.User, friendsCount int64) *UserInfo {
	if user == nil {
		return nil
	}

	return &UserInfo{
		ID:           user.ID,
		Username:     user.Username,
		Photo:        user.Photo,
		Wallpaper:    user.Wallpaper,
		Bio:          user.Bio,
		FriendsCount: friendsCount,
		CreatedAt:    user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// PostInfo 帖子信息
type PostInfo struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UserID    uint   `json:"user_id"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"created_at"`
}

// FilterPostInfo 过滤帖子信息
func FilterPostInfo(post *model.Post) *PostInfo {
	if post == nil {
		return nil
	}

	return &PostInfo{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// FilterPostList 批量过滤帖子信息
func FilterPostList(posts []*model.Post) []*PostInfo {
	infos := make([]*PostInfo, 0, len(posts))
	for _, post := range posts {
		infos = append(infos, FilterPostInfo(post))
	}
	return infos
}

// FriendRequestInfo 好友请求信息
type FriendRequestInfo struct {
	ID         uint   `json:"id"`
	SenderID   uint   `json:"sender_id"`
	Sender     string `json:"sender,omitempty"`
	ReceiverID uint   `json:"receiver_id"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// FilterFriendRequestInfo 过滤好友请求信息
func FilterFriendRequestInfo(request *model.FriendRequest) *FriendRequestInfo {
	if request == nil {
		return nil
	}

	return &FriendRequestInfo{
		ID:         request.ID,
		SenderID:   request.SenderID,
		ReceiverID: request.ReceiverID,
		Status:     request.Status,
		CreatedAt:  request.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// NotificationInfo 通知信息
type NotificationInfo struct {
	ID        uint   `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// FilterNotificationInfo 过滤通知信息
func FilterNotificationInfo(notification *model.Notification) *NotificationInfo {
	if notification == nil {
		return nil
	}

	return &NotificationInfo{
		ID:        notification.ID,
		Message:   notification.Message,
		CreatedAt: notification.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// FilterNotificationList 批量过滤通知信息
func FilterNotificationList(notifications []*model.Notification) []*NotificationInfo {
	infos := make([]*NotificationInfo, 0, len(notifications))
	for _, notification := range notifications {
		infos = append(infos, FilterNotificationInfo(notification))
	}
	return infos
}
