package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"blog-system/config"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Service 浏览器会话服务
// 会话记录保存在Redis（session:{sid} -> 用户ID，带过期时间）
// Cookie中保存HS256签名令牌，Subject为会话ID
// 登出时删除Redis记录即可使Cookie立即失效

type Service struct {
	client     *redis.Client // Redis客户端
	secret     []byte        // 签名密钥
	cookieName string        // 会话Cookie名称
	lifetime   time.Duration // 会话有效期
}

var ctx = context.Background()

// ErrNoSession 会话不存在或已失效
var ErrNoSession = errors.New("session not found")

// sessionKey Redis键名
func sessionKey(sid string) string {
	return "session:" + sid
}

// NewService 创建会话服务并连接Redis
func NewService(cfg config.SessionConfig, redisCfg config.RedisConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisCfg.Host, redisCfg.Port),
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
		// 连接池配置
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// 测试连接
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis连接失败: %w", err)
	}

	return &Service{
		client:     client,
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		lifetime:   cfg.Lifetime,
	}, nil
}

// Create 为指定用户创建会话，返回可写入Cookie的签名令牌
func (s *Service) Create(userID uint) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, sessionKey(sid), strconv.FormatUint(uint64(userID), 10), s.lifetime).Err(); err != nil {
		return "", fmt.Errorf("保存会话失败: %w", err)
	}
	return signSessionID(s.secret, sid, s.lifetime)
}

// Resolve 解析Cookie令牌并返回会话对应的用户ID
func (s *Service) Resolve(token string) (uint, error) {
	sid, err := parseSessionID(s.secret, token)
	if err != nil {
		return 0, ErrNoSession
	}
	val, err := s.client.Get(ctx, sessionKey(sid)).Result()
	if err != nil {
		// 记录不存在视为未登录，其他错误同样不暴露给调用方
		return 0, ErrNoSession
	}
	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, ErrNoSession
	}
	return uint(userID), nil
}

// Destroy 销毁会话（删除Redis记录）
func (s *Service) Destroy(token string) error {
	sid, err := parseSessionID(s.secret, token)
	if err != nil {
		// 令牌无效时无会话可销毁
		return nil
	}
	return s.client.Del(ctx, sessionKey(sid)).Err()
}

// Counter 递增计数器（供通知未读数使用）
func (s *Service) Counter(key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

// CounterValue 读取计数器当前值，键不存在返回0
func (s *Service) CounterValue(key string) (int64, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// ResetCounter 清零计数器
func (s *Service) ResetCounter(key string) error {
	return s.client.Del(ctx, key).Err()
}

// HealthCheck 检查Redis健康状态
func (s *Service) HealthCheck() error {
	if _, err := s.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis连接异常: %w", err)
	}
	return nil
}

// Close 关闭Redis连接
func (s *Service) Close() error {
	return s.client.Close()
}

// newSessionID 生成随机会话ID
func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成会话ID失败: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// signSessionID 将会话ID签名为HS256令牌
// 会话ID作为Subject存入标准声明
func signSessionID(secret []byte, sid string, lifetime time.Duration) (string, error) {
	if sid == "" {
		return "", errors.New("sid is required")
	}

	now := time.Now()
	claims := &jwtv5.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwtv5.NewNumericDate(now),
		NotBefore: jwtv5.NewNumericDate(now),
		ExpiresAt: jwtv5.NewNumericDate(now.Add(lifetime)),
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// parseSessionID 校验令牌并取出会话ID
func parseSessionID(secret []byte, tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("token is empty")
	}
	claims := &jwtv5.RegisteredClaims{}
	parsedToken, err := jwtv5.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwtv5.Token) (interface{}, error) {
			// 验证签名方法
			if token.Method != jwtv5.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		},
	)
	if err != nil {
		return "", fmt.Errorf("parse token failed: %w", err)
	}
	if !parsedToken.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
