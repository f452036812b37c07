package service

import (
	"sort"
	"strings"

	"blog-system/internal/model"

	"gorm.io/gorm"
)

// 内存版存储实现，替代GORM仓储用于服务层测试
// 未找到记录时返回gorm.ErrRecordNotFound，与仓储行为一致

type memUserStore struct {
	nextID uint
	users  map[uint]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{nextID: 1, users: make(map[uint]*model.User)}
}

func (s *memUserStore) Create(user *model.User) error {
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) GetByID(id uint) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByUsername(username string) (*model.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) ExistsByUsername(username string) (bool, error) {
	_, err := s.GetByUsername(username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (s *memUserStore) Update(user *model.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) SearchByUsernameExcluding(query string, excludedIDs []uint) ([]*model.User, error) {
	excluded := make(map[uint]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	var result []*model.User
	for _, user := range s.users {
		if excluded[user.ID] {
			continue
		}
		if strings.Contains(user.Username, query) {
			copied := *user
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *memUserStore) ListByIDs(ids []uint) ([]*model.User, error) {
	seen := make(map[uint]bool, len(ids))
	var result []*model.User
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if user, ok := s.users[id]; ok {
			copied := *user
			result = append(result, &copied)
		}
	}
	return result, nil
}

type memPostStore struct {
	nextID uint
	posts  map[uint]*model.Post
}

func newMemPostStore() *memPostStore {
	return &memPostStore{nextID: 1, posts: make(map[uint]*model.Post)}
}

func (s *memPostStore) Create(post *model.Post) error {
	post.ID = s.nextID
	s.nextID++
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *memPostStore) GetByID(id uint) (*model.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *post
	return &copied, nil
}

func (s *memPostStore) Update(post *model.Post) error {
	if _, ok := s.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *memPostStore) Delete(id uint) error {
	delete(s.posts, id)
	return nil
}

func (s *memPostStore) ListRecent() ([]*model.Post, error) {
	var result []*model.Post
	for _, post := range s.posts {
		copied := *post
		result = append(result, &copied)
	}
	// 按创建时间倒序，同一时间按ID倒序近似落库顺序
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *memPostStore) ListByUser(userID uint) ([]*model.Post, error) {
	var result []*model.Post
	for _, post := range s.posts {
		if post.UserID == userID {
			copied := *post
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *memPostStore) CountByUser(userID uint) (int64, error) {
	var count int64
	for _, post := range s.posts {
		if post.UserID == userID {
			count++
		}
	}
	return count, nil
}

type memRequestStore struct {
	nextID   uint
	requests map[uint]*model.FriendRequest
}

func newMemRequestStore() *memRequestStore {
	return &memRequestStore{nextID: 1, requests: make(map[uint]*model.FriendRequest)}
}

func (s *memRequestStore) Create(request *model.FriendRequest) error {
	request.ID = s.nextID
	s.nextID++
	copied := *request
	s.requests[request.ID] = &copied
	return nil
}

func (s *memRequestStore) GetByID(id uint) (*model.FriendRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (s *memRequestStore) UpdateStatus(id uint, status string) error {
	request, ok := s.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	request.Status = status
	return nil
}

func (s *memRequestStore) GetBySenderAndReceiver(senderID, receiverID uint) (*model.FriendRequest, error) {
	for _, request := range s.requests {
		if request.SenderID == senderID && request.ReceiverID == receiverID {
			copied := *request
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memRequestStore) ListPendingForReceiver(receiverID uint) ([]*model.FriendRequest, error) {
	return s.list(func(r *model.FriendRequest) bool {
		return r.ReceiverID == receiverID && r.Status == model.FriendRequestPending
	}), nil
}

func (s *memRequestStore) ListAcceptedFor(userID uint) ([]*model.FriendRequest, error) {
	return s.list(func(r *model.FriendRequest) bool {
		return (r.SenderID == userID || r.ReceiverID == userID) && r.Status == model.FriendRequestAccepted
	}), nil
}

func (s *memRequestStore) ListAllTouching(userID uint) ([]*model.FriendRequest, error) {
	return s.list(func(r *model.FriendRequest) bool {
		return r.SenderID == userID || r.ReceiverID == userID
	}), nil
}

func (s *memRequestStore) CountAcceptedFor(userID uint) (int64, error) {
	accepted, _ := s.ListAcceptedFor(userID)
	return int64(len(accepted)), nil
}

func (s *memRequestStore) list(match func(*model.FriendRequest) bool) []*model.FriendRequest {
	var result []*model.FriendRequest
	for _, request := range s.requests {
		if match(request) {
			copied := *request
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

type memNotificationStore struct {
	nextID        uint
	notifications []*model.Notification
}

func newMemNotificationStore() *memNotificationStore {
	return &memNotificationStore{nextID: 1}
}

func (s *memNotificationStore) Create(notification *model.Notification) error {
	notification.ID = s.nextID
	s.nextID++
	copied := *notification
	s.notifications = append(s.notifications, &copied)
	return nil
}

func (s *memNotificationStore) ListLatest(userID uint, limit int) ([]*model.Notification, error) {
	var result []*model.Notification
	// 追加写入，倒着遍历即时间倒序
	for i := len(s.notifications) - 1; i >= 0 && len(result) < limit; i-- {
		if s.notifications[i].UserID == userID {
			copied := *s.notifications[i]
			result = append(result, &copied)
		}
	}
	return result, nil
}

// forUser 用户的全部通知（测试断言用）
func (s *memNotificationStore) forUser(userID uint) []*model.Notification {
	var result []*model.Notification
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			result = append(result, notification)
		}
	}
	return result
}

// memTx 直接在同一组存储上执行，单线程测试无需真实事务
type memTx struct {
	stores Stores
}

func (t *memTx) InTx(fn func(s Stores) error) error {
	return fn(t.stores)
}

// memCounter 内存未读计数器
type memCounter struct {
	counts map[uint]int64
}

func newMemCounter() *memCounter {
	return &memCounter{counts: make(map[uint]int64)}
}

func (c *memCounter) Incr(userID uint)        { c.counts[userID]++ }
func (c *memCounter) Count(userID uint) int64 { return c.counts[userID] }
func (c *memCounter) Reset(userID uint)       { delete(c.counts, userID) }

// env 服务层测试环境
type env struct {
	users         *memUserStore
	posts         *memPostStore
	requests      *memRequestStore
	notifications *memNotificationStore
	counter       *memCounter

	userSvc         *UserService
	postSvc         *PostService
	friendSvc       *FriendService
	notificationSvc *NotificationService
}

func newEnv() *env {
	users := newMemUserStore()
	posts := newMemPostStore()
	requests := newMemRequestStore()
	notifications := newMemNotificationStore()
	counter := newMemCounter()

	tx := &memTx{stores: Stores{
		Users:         users,
		Posts:         posts,
		Requests:      requests,
		Notifications: notifications,
	}}

	return &env{
		users:           users,
		posts:           posts,
		requests:        requests,
		notifications:   notifications,
		counter:         counter,
		userSvc:         NewUserService(users, posts, requests),
		postSvc:         NewPostService(posts),
		friendSvc:       NewFriendService(tx, users, requests, counter),
		notificationSvc: NewNotificationService(notifications, counter),
	}
}

// mustRegister 注册用户，失败直接panic（测试装配用）
func (e *env) mustRegister(username string) *model.User {
	user, err := e.userSvc.Register(username, "password123")
	if err != nil {
		panic(err)
	}
	return user
}
