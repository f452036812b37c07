package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt代价因子，沿用官方默认值
const hashCost = bcrypt.DefaultCost

// Hash 生成密码哈希
// 数据库只保存哈希，任何路径都不落明文
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", fmt.Errorf("生成密码哈希失败: %w", err)
	}
	return string(hashed), nil
}

// Verify 校验明文密码与哈希是否匹配
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
