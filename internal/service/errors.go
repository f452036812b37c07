package service

import "errors"

// 业务错误
// 处理器据此映射为flash提示 + 跳转，或404
var (
	// ErrInvalidInput 必填字段缺失或非法
	ErrInvalidInput = errors.New("invalid input")
	// ErrUsernameTaken 用户名已存在
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("not found")
	// ErrNotOwner 非资源所有者
	ErrNotOwner = errors.New("not the owner")
	// ErrRequestExists 该方向的好友请求已存在
	ErrRequestExists = errors.New("friend request already sent")
	// ErrNotReceiver 非请求接收者
	ErrNotReceiver = errors.New("not the receiver of this request")
)
