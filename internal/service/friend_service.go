package service

import (
	"errors"
	"fmt"

	"blog-system/internal/model"

	"gorm.io/gorm"
)

// FriendService 好友关系引擎
// 负责请求状态机（pending -> accepted/rejected）、好友列表与搜索排除集
// 请求创建/状态变更与对应通知在同一事务内落库
type FriendService struct {
	tx       TxRunner
	users    UserStore
	requests FriendRequestStore
	unread   UnreadCounter
}

// NewFriendService 创建FriendService实例
func NewFriendService(tx TxRunner, users UserStore, requests FriendRequestStore, unread UnreadCounter) *FriendService {
	return &FriendService{tx: tx, users: users, requests: requests, unread: unread}
}

// SendRequest 发送好友请求
// 仅检查 发送者->接收者 方向是否已有请求，反方向不查
// 已存在返回ErrRequestExists，处理器转为flash提示，不产生新行
func (s *FriendService) SendRequest(senderID, receiverID uint) error {
	sender, err := s.users.GetByID(senderID)
	if err != nil {
		return mapNotFound(err)
	}
	if _, err := s.users.GetByID(receiverID); err != nil {
		return mapNotFound(err)
	}

	existing, err := s.requests.GetBySenderAndReceiver(senderID, receiverID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrRequestExists
	}

	err = s.tx.InTx(func(st Stores) error {
		request := &model.FriendRequest{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     model.FriendRequestPending,
		}
		if err := st.Requests.Create(request); err != nil {
			return err
		}
		return st.Notifications.Create(&model.Notification{
			UserID:  receiverID,
			Message: fmt.Sprintf("%s sent you a friend request!", sender.Username),
		})
	})
	if err != nil {
		return err
	}

	// 未读计数尽力而为，失败不影响主流程
	s.unread.Incr(receiverID)
	return nil
}

// Respond 处理好友请求（accept/reject）
// 仅接收者可操作，其他人返回ErrNotReceiver（处理器静默跳转）
// 无状态回退保护：重复调用以最后一次为准
func (s *FriendService) Respond(requestID, actorID uint, decision string) error {
	var status, verb string
	switch decision {
	case "accept":
		status, verb = model.FriendRequestAccepted, "accepted your friend request!"
	case "reject":
		status, verb = model.FriendRequestRejected, "rejected your friend request."
	default:
		return ErrInvalidInput
	}

	request, err := s.requests.GetByID(requestID)
	if err != nil {
		return mapNotFound(err)
	}
	if request.ReceiverID != actorID {
		return ErrNotReceiver
	}

	actor, err := s.users.GetByID(actorID)
	if err != nil {
		return mapNotFound(err)
	}

	err = s.tx.InTx(func(st Stores) error {
		if err := st.Requests.UpdateStatus(requestID, status); err != nil {
			return err
		}
		return st.Notifications.Create(&model.Notification{
			UserID:  request.SenderID,
			Message: fmt.Sprintf("%s %s", actor.Username, verb),
		})
	})
	if err != nil {
		return err
	}

	s.unread.Incr(request.SenderID)
	return nil
}

// ListFriends 好友列表
// 取用户已接受的发送请求的接收者 ∪ 已接受的接收请求的发送者
func (s *FriendService) ListFriends(userID uint) ([]*model.User, error) {
	accepted, err := s.requests.ListAcceptedFor(userID)
	if err != nil {
		return nil, err
	}
	friendIDs := make([]uint, 0, len(accepted))
	for _, request := range accepted {
		if request.SenderID == userID {
			friendIDs = append(friendIDs, request.ReceiverID)
		} else {
			friendIDs = append(friendIDs, request.SenderID)
		}
	}
	return s.users.ListByIDs(friendIDs)
}

// ListPendingIncoming 用户收到的全部待处理请求
func (s *FriendService) ListPendingIncoming(userID uint) ([]*model.FriendRequest, error) {
	return s.requests.ListPendingForReceiver(userID)
}

// SearchCandidates 搜索可添加的好友
// 按用户名子串匹配，排除自己以及与自己有过任意方向、任意状态请求的用户
// 一旦出现过请求（含已拒绝），双方在对方搜索结果中永不再现
func (s *FriendService) SearchCandidates(userID uint, query string) ([]*model.User, error) {
	touching, err := s.requests.ListAllTouching(userID)
	if err != nil {
		return nil, err
	}
	excludedIDs := []uint{userID}
	for _, request := range touching {
		if request.SenderID == userID {
			excludedIDs = append(excludedIDs, request.ReceiverID)
		} else {
			excludedIDs = append(excludedIDs, request.SenderID)
		}
	}
	return s.users.SearchByUsernameExcluding(query, excludedIDs)
}

// mapNotFound 将存储层的记录不存在错误映射为业务错误
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
